package labels

import "testing"

func TestNormalizeTypeLine(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean", "3.9 CLT Q180", "3.9 CLT Q180"},
		{"whitespace runs", "  3.9   CLT\tQ180 ", "3.9 CLT Q180"},
		{"prefix repair", "39 CLT Q180", "3.9 CLT Q180"},
		{"letter split", "3.9 C L T Q180", "3.9 CLT Q180"},
		{"letter split lower case", "4.7 c l a MATT", "4.7 CLA MATT"},
		{"unknown split left alone", "3.9 X Y Z", "3.9 X Y Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.NormalizeTypeLine(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDecomposeType(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		name     string
		line     string
		expected TypeParts
	}{
		{
			name:     "ocr noise in tint",
			line:     "3.9 CLT Q18O",
			expected: TypeParts{Thickness: "3.9", GlassType: "CLT", Tint: "Q180"},
		},
		{
			name:     "repaired prefix and split letters",
			line:     "39 C L T E18O",
			expected: TypeParts{Thickness: "3.9", GlassType: "CLT", Tint: "E180"},
		},
		{
			name:     "multi token body",
			line:     "4.7 CLA LAMI MATT",
			expected: TypeParts{Thickness: "4.7", GlassType: "CLA LAMI", Tint: "MATT"},
		},
		{
			name:     "below threshold leaves type empty",
			line:     "3.9 CLT EZZ",
			expected: TypeParts{Thickness: "3.9"},
		},
		{
			name:     "clear glass has thickness only",
			line:     "5.7",
			expected: TypeParts{Thickness: "5.7"},
		},
		{
			name:     "unrecognized thickness kept verbatim",
			line:     "9.9 CLT BRZ",
			expected: TypeParts{Thickness: "9.9", GlassType: "CLT", Tint: "BRZ"},
		},
		{
			name:     "tie keeps first token",
			line:     "3.9 Q1 E1",
			expected: TypeParts{Thickness: "3.9", GlassType: "E1", Tint: "Q180"},
		},
		{
			name:     "tie keeps first dictionary entry",
			line:     "3.9 CLT E180",
			expected: TypeParts{Thickness: "3.9", GlassType: "CLT", Tint: "E180"},
		},
		{
			name:     "empty line",
			line:     "   ",
			expected: TypeParts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.DecomposeType(tt.line)
			if got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
