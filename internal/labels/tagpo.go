package labels

import "regexp"

var (
	tagPattern = regexp.MustCompile(`(?:^|\D)(\d{6}(?:[-.,]\d+)?)(?:\D|$)`)
	poPattern  = regexp.MustCompile(`(?:^|\D)(\d{3,6}-\d{3})(?:\D|$)`)
)

// ExtractTag returns the first six digit tag number in raw, including a
// compound suffix such as "-5".
func ExtractTag(raw string) string {
	return firstGroup(tagPattern, raw)
}

// ExtractPO returns the first purchase order reference (NNN-NNN through
// NNNNNN-NNN) in raw.
func ExtractPO(raw string) string {
	return firstGroup(poPattern, raw)
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
