package labels

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"identical", "Q180", "Q180", 4},
		{"case folded", "q180", "Q180", 4},
		{"ocr letter for digit", "Q18O", "Q180", 3},
		{"short token against long entry", "E1", "E180ESC", 2},
		{"trailing runes ignored", "E180ESC", "E180", 4},
		{"no overlap", "ABC", "XYZ", 0},
		{"empty", "", "MATT", 0},
		{"position matters", "TAM", "MAT", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
			if got := Similarity(tt.b, tt.a); got != tt.expected {
				t.Errorf("Expected symmetric score %d, got %d", tt.expected, got)
			}
		})
	}
}
