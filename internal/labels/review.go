package labels

import "fmt"

// Issue flags a field that needs a person to look at the label.
type Issue struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Review lists the reasons an extraction result should be checked by hand.
// Empty fields are never fatal; they are only reported.
func (v *Vocabulary) Review(f Fields, raw string) []Issue {
	if IsOCRError(raw) {
		return []Issue{{Message: "transcription failed"}}
	}

	var issues []Issue
	for _, name := range f.Missing() {
		issues = append(issues, Issue{Field: name, Message: "not found"})
	}
	if f.Thickness != "" && !v.IsPrefix(f.Thickness) {
		issues = append(issues, Issue{
			Field:   FieldThickness,
			Message: fmt.Sprintf("unrecognized thickness %q", f.Thickness),
		})
	}
	return issues
}
