package labels

import "unicode"

// Similarity counts the positions at which a and b hold the same rune,
// ignoring case. Only the overlapping prefix is compared: trailing runes of
// the longer string do not count against it.
func Similarity(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := min(len(ra), len(rb))

	score := 0
	for i := 0; i < n; i++ {
		if unicode.ToLower(ra[i]) == unicode.ToLower(rb[i]) {
			score++
		}
	}
	return score
}
