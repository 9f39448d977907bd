// Package extraction pulls category-tagged clause spans, date literals
// and risk phrases out of raw contract text. Everything here is a pure
// function over an immutable input string.
package extraction

import (
	"regexp"

	"github.com/risklens/risklens/internal/core/domain"
)

// Each category matches a start keyword and captures up to 200 trailing
// characters, non-overlapping. Spans are kept in document order and are
// not deduplicated.
var (
	paymentPattern     = regexp.MustCompile(`(?is)payments?\s+(?:(?:is|are)\s+)?(?:terms?|due|within|shall be made).{0,200}`)
	terminationPattern = regexp.MustCompile(`(?is)terminat(?:e|ion).{0,200}`)
	liabilityPattern   = regexp.MustCompile(`(?is)(?:liability|indemnif|indemnit).{0,200}`)
	ipPattern          = regexp.MustCompile(`(?is)(?:intellectual property|copyright|trademark|patent).{0,200}`)
	renewalPattern     = regexp.MustCompile(`(?is)(?:auto[- ]?renew|automatic(?:ally)? renew|renew(?:al)?).{0,200}`)
	lawPattern         = regexp.MustCompile(`(?is)(?:governing law|governed by|applicable law).{0,200}`)
	insurancePattern   = regexp.MustCompile(`(?is)insurance.{0,200}`)

	// Numeric D/M/Y variants plus the "Month D, YYYY" form.
	datePattern = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2}|(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4})\b`)
)

// ExtractClauses returns every category, empty slices included, so the
// serialized result always carries the full category map.
func ExtractClauses(text string) domain.ClauseSet {
	return domain.ClauseSet{
		PaymentTerms:         matchAll(paymentPattern, text),
		Termination:          matchAll(terminationPattern, text),
		Liability:            matchAll(liabilityPattern, text),
		IntellectualProperty: matchAll(ipPattern, text),
		AutoRenewal:          matchAll(renewalPattern, text),
		GoverningLaw:         matchAll(lawPattern, text),
		Insurance:            matchAll(insurancePattern, text),
		Dates:                dedupeOrdered(matchAll(datePattern, text)),
	}
}

func matchAll(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

func dedupeOrdered(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
