package metrics

import (
	"fmt"
	"strings"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
	"github.com/agext/levenshtein"
)

// Comparison methods, from best to worst
const (
	MethodExact           = "exact"
	MethodFuzzyHigh       = "fuzzy_high"
	MethodFuzzyMedium     = "fuzzy_medium"
	MethodNoMatch         = "no_match"
	MethodActualMissing   = "actual_missing"
	MethodExpectedMissing = "expected_missing"
	MethodBothMissing     = "both_missing"
)

// fieldWeights sum to 1. Tag and size identify the unit, so they weigh most.
var fieldWeights = map[string]float64{
	labels.FieldThickness: 0.15,
	labels.FieldGlassType: 0.10,
	labels.FieldTint:      0.15,
	labels.FieldSize:      0.25,
	labels.FieldTag:       0.25,
	labels.FieldPO:        0.10,
}

// LabelComparison is the field-by-field comparison of one extraction
type LabelComparison struct {
	Fields           map[string]FieldMatch `json:"fields"`
	OverallScore     float64               `json:"overall_score"`
	FieldsMatched    int                   `json:"fields_matched"`
	FieldsMissing    int                   `json:"fields_missing"`
	FieldsIncorrect  int                   `json:"fields_incorrect"`
	LevenshteinTotal int                   `json:"levenshtein_total"`
}

// FieldMatch represents the comparison result for a single field
type FieldMatch struct {
	Expected string  `json:"expected"`
	Actual   string  `json:"actual"`
	Score    float64 `json:"score"` // 0.0 to 1.0
	Method   string  `json:"method"`
	Notes    string  `json:"notes,omitempty"`
}

// Perfect reports whether every field was extracted exactly
func (c *LabelComparison) Perfect() bool {
	for _, m := range c.Fields {
		if m.Method != MethodExact && m.Method != MethodBothMissing {
			return false
		}
	}
	return true
}

// CompareFields compares extracted fields against the expected ones
func CompareFields(expected, actual labels.Fields) *LabelComparison {
	comparison := &LabelComparison{
		Fields: make(map[string]FieldMatch, len(labels.FieldNames)),
	}

	for _, name := range labels.FieldNames {
		match, distance := compareField(expected.Get(name), actual.Get(name))
		comparison.Fields[name] = match
		comparison.OverallScore += match.Score * fieldWeights[name]
		comparison.LevenshteinTotal += distance

		switch match.Method {
		case MethodExact, MethodBothMissing, MethodFuzzyHigh:
			comparison.FieldsMatched++
		case MethodActualMissing:
			comparison.FieldsMissing++
		default:
			comparison.FieldsIncorrect++
		}
	}

	return comparison
}

// compareField scores one field. An empty expected value means the label
// carries no such field, so an empty actual value is a correct result.
func compareField(expected, actual string) (FieldMatch, int) {
	match := FieldMatch{
		Expected: expected,
		Actual:   actual,
	}

	expNorm := normalizeForComparison(expected)
	actNorm := normalizeForComparison(actual)

	switch {
	case expNorm == "" && actNorm == "":
		match.Score = 1.0
		match.Method = MethodBothMissing
		match.Notes = "Field absent from label and not extracted"
		return match, 0
	case expNorm == "":
		match.Method = MethodExpectedMissing
		match.Notes = "Extracted a value the label does not carry"
		return match, len(actNorm)
	case actNorm == "":
		match.Method = MethodActualMissing
		match.Notes = "Field not extracted"
		return match, len(expNorm)
	case expNorm == actNorm:
		match.Score = 1.0
		match.Method = MethodExact
		return match, 0
	}

	distance := levenshtein.Distance(expNorm, actNorm, nil)
	similarity := levenshtein.Similarity(expNorm, actNorm, nil)
	match.Score = similarity

	switch {
	case similarity > 0.8:
		match.Method = MethodFuzzyHigh
		match.Notes = fmt.Sprintf("High similarity (%.2f), Levenshtein distance: %d", similarity, distance)
	case similarity > 0.5:
		match.Method = MethodFuzzyMedium
		match.Notes = fmt.Sprintf("Medium similarity (%.2f), Levenshtein distance: %d", similarity, distance)
	default:
		match.Method = MethodNoMatch
		match.Notes = fmt.Sprintf("Low similarity (%.2f), Levenshtein distance: %d", similarity, distance)
	}

	return match, distance
}

// normalizeForComparison upper-cases and collapses whitespace. Punctuation is
// kept because "3.9" and "39" or "5/16" and "516" are different values.
func normalizeForComparison(text string) string {
	return strings.ToUpper(strings.Join(strings.Fields(text), " "))
}
