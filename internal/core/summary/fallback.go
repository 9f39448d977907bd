// Package summary holds the local extractive summarizer used when the
// remote summarization service is unavailable.
package summary

import (
	"regexp"
	"strings"
)

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// Fallback builds a deterministic extractive summary: the first three
// sentences longer than 20 characters, joined and terminated with a
// period.
func Fallback(text string) string {
	parts := sentenceTerminators.Split(text, -1)

	kept := make([]string, 0, 3)
	for _, part := range parts {
		if len(strings.TrimSpace(part)) <= 20 {
			continue
		}
		kept = append(kept, part)
		if len(kept) == 3 {
			break
		}
	}

	out := strings.TrimSpace(strings.Join(kept, ". "))
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}
