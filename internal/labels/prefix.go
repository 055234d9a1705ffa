package labels

import "regexp"

type prefixRule struct {
	pattern *regexp.Regexp
	repl    string
}

// Malformed thickness spellings such as "39", "3 9", "3-9" or "3/9". Each
// family is matched as a whole token so digits inside longer runs such as a
// tag number are left alone.
var prefixRules = []prefixRule{
	{regexp.MustCompile(`\b3[ \-_:,/]?9\b`), "3.9"},
	{regexp.MustCompile(`\b3[ \-_:,/]?1\b`), "3.1"},
	{regexp.MustCompile(`\b4[ \-_:,/]?7\b`), "4.7"},
	{regexp.MustCompile(`\b5[ \-_:,/]?7\b`), "5.7"},
}

// RepairPrefixes rewrites malformed thickness tokens into their canonical
// dotted form. Canonical tokens are fixed points, so applying it twice is
// the same as applying it once.
func RepairPrefixes(s string) string {
	for _, r := range prefixRules {
		s = r.pattern.ReplaceAllString(s, r.repl)
	}
	return s
}
