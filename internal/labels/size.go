package labels

import (
	"regexp"
	"strings"
)

const (
	sizeFraction = `((?:\d+\s+)?\d+/\d+)`
	sizeWhole    = `(\d+(?:\.\d+)?)`
	sizeLead     = `(?:^|[^\d./])`
	sizeTrail    = `(?:$|[^\d./])`
	sizeBy       = `\s*[xX]\s*`
)

// Size shapes in priority order. The first rule to match a line wins.
var sizeRules = []*regexp.Regexp{
	regexp.MustCompile(sizeLead + sizeFraction + sizeBy + sizeFraction),
	regexp.MustCompile(sizeLead + sizeFraction + sizeBy + sizeWhole + sizeTrail),
	regexp.MustCompile(sizeLead + sizeWhole + sizeBy + sizeFraction),
	regexp.MustCompile(sizeLead + sizeWhole + sizeBy + sizeWhole + sizeTrail),
	regexp.MustCompile(`^(\d+)\s+(\d+)$`),
}

var (
	sizeSkipRules = []*regexp.Regexp{
		regexp.MustCompile(`\b20\d{2}\b`),
		regexp.MustCompile(`\d+:\d+`),
		regexp.MustCompile(`(?i)WO:|WD-`),
	}
	sizeDelimiter = regexp.MustCompile(`[xX]`)
	sizeBarePair  = sizeRules[len(sizeRules)-1]
)

// ExtractSize returns the first width x height measurement found in lines,
// formatted "<W> x <H>", or "" when no line holds one.
func ExtractSize(lines []string) string {
	size, _ := findSize(lines)
	return size
}

func findSize(lines []string) (string, int) {
	for i, line := range lines {
		if !isSizeCandidate(line) {
			continue
		}
		for _, rule := range sizeRules {
			m := rule.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			return collapseSpaces(m[1]) + " x " + collapseSpaces(m[2]), i
		}
	}
	return "", -1
}

func isSizeCandidate(line string) bool {
	for _, skip := range sizeSkipRules {
		if skip.MatchString(line) {
			return false
		}
	}
	return sizeDelimiter.MatchString(line) || sizeBarePair.MatchString(line)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
