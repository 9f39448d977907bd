package extraction

import "regexp"

type redFlagPattern struct {
	pattern *regexp.Regexp
	flag    string
}

// A flag is emitted at most once per pattern, in this declaration order,
// regardless of how often or where the phrase appears.
var redFlagPatterns = []redFlagPattern{
	{regexp.MustCompile(`(?i)unlimited liability`), "Unlimited liability clause detected"},
	{regexp.MustCompile(`(?i)personal guarantee`), "Personal guarantee requirement found"},
	{regexp.MustCompile(`(?i)automatic(?:ally)?\s+renew`), "Automatic renewal clause found"},
	{regexp.MustCompile(`(?i)non[- ]?compete`), "Non-compete clause detected"},
	{regexp.MustCompile(`(?i)sole discretion`), "Sole discretion clause found"},
	{regexp.MustCompile(`(?i)without cause`), "Termination without cause clause found"},
	{regexp.MustCompile(`(?i)liquidated damages`), "Liquidated damages clause detected"},
	{regexp.MustCompile(`(?i)assignment[^.]{0,50}without[^.]{0,50}consent`), "Assignment without consent clause found"},
	{regexp.MustCompile(`(?i)exclusive`), "Exclusivity clause detected"},
	{regexp.MustCompile(`(?i)penalty`), "Penalty clause found"},
}

// DetectRedFlags reports presence, not frequency.
func DetectRedFlags(text string) []string {
	flags := []string{}
	for _, rf := range redFlagPatterns {
		if rf.pattern.MatchString(text) {
			flags = append(flags, rf.flag)
		}
	}
	return flags
}
