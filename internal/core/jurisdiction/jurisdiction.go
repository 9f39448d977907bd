// Package jurisdiction decides whether a contract's governing law falls
// inside the approved set of US states.
package jurisdiction

import (
	"fmt"
	"regexp"
	"strings"
)

// ApprovedStates is the allow-list, in the order used by rejection messages.
var ApprovedStates = []string{
	"oklahoma", "texas", "louisiana", "tennessee",
	"kansas", "missouri", "mississippi", "alabama", "florida",
}

// DisallowedState is rejected outright, even when an approved state is
// also present.
const DisallowedState = "colorado"

type statePattern struct {
	name    string
	pattern *regexp.Regexp
}

// Recognized state names and postal abbreviations, word-bounded and
// case-insensitive. Detection order follows this declaration order.
var statePatterns = []statePattern{
	{"alabama", regexp.MustCompile(`(?i)\b(?:alabama|AL)\b`)},
	{"florida", regexp.MustCompile(`(?i)\b(?:florida|FL)\b`)},
	{"kansas", regexp.MustCompile(`(?i)\b(?:kansas|KS)\b`)},
	{"louisiana", regexp.MustCompile(`(?i)\b(?:louisiana|LA)\b`)},
	{"mississippi", regexp.MustCompile(`(?i)\b(?:mississippi|MS)\b`)},
	{"missouri", regexp.MustCompile(`(?i)\b(?:missouri|MO)\b`)},
	{"oklahoma", regexp.MustCompile(`(?i)\b(?:oklahoma|OK)\b`)},
	{"tennessee", regexp.MustCompile(`(?i)\b(?:tennessee|TN)\b`)},
	{"texas", regexp.MustCompile(`(?i)\b(?:texas|TX)\b`)},
	{"colorado", regexp.MustCompile(`(?i)\b(?:colorado|CO)\b`)},
}

// Governing-law clauses are the authoritative jurisdiction signal; the
// bounded width keeps the match inside the clause sentence.
var governingLawPattern = regexp.MustCompile(`(?i)(?:governing law|governed by|applicable law|jurisdiction)[^.]{0,100}(?:state of\s+)?[^.]{0,50}`)

// DetectStates scans governing-law clauses first and only falls back to
// whole-document scanning when no clause names a state. The fallback is
// a lower-confidence signal: incidental mentions (a party's mailing
// address) should not override an explicit governing-law clause.
func DetectStates(text string) []string {
	var detected []string

	for _, clause := range governingLawPattern.FindAllString(text, -1) {
		for _, sp := range statePatterns {
			if sp.pattern.MatchString(clause) {
				detected = append(detected, sp.name)
			}
		}
	}

	if len(detected) == 0 {
		for _, sp := range statePatterns {
			if sp.pattern.MatchString(text) {
				detected = append(detected, sp.name)
			}
		}
	}

	return dedupe(detected)
}

// Validation is the outcome of checking detected states against the
// allow-list. Reason is the caller-facing message when Valid is false.
type Validation struct {
	Valid          bool
	ApprovedStates []string
	Reason         string
}

func Validate(detected []string) Validation {
	for _, state := range detected {
		if state == DisallowedState {
			return Validation{
				Valid:  false,
				Reason: "Colorado contracts are not supported by this analyzer.",
			}
		}
	}

	var approved []string
	for _, state := range detected {
		if isApproved(state) {
			approved = append(approved, state)
		}
	}

	if len(approved) == 0 {
		if len(detected) > 0 {
			return Validation{
				Valid: false,
				Reason: fmt.Sprintf(
					"This analyzer only supports contracts from: %s. Detected states: %s.",
					strings.Join(ApprovedStates, ", "), strings.Join(detected, ", ")),
			}
		}
		return Validation{
			Valid: false,
			Reason: fmt.Sprintf(
				"This analyzer only supports contracts from: %s. No valid state jurisdiction could be determined from the contract.",
				strings.Join(ApprovedStates, ", ")),
		}
	}

	return Validation{Valid: true, ApprovedStates: approved}
}

func isApproved(state string) bool {
	for _, a := range ApprovedStates {
		if a == state {
			return true
		}
	}
	return false
}

func dedupe(states []string) []string {
	seen := make(map[string]struct{}, len(states))
	out := make([]string, 0, len(states))
	for _, s := range states {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
