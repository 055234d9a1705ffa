package labels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()

	if v.Anchor() != "cut>" {
		t.Errorf("Expected anchor cut>, got %q", v.Anchor())
	}
	if err := v.Validate(); err != nil {
		t.Errorf("Embedded vocabulary invalid: %v", err)
	}
	if got := v.Suffixes()[0]; got != "E180" {
		t.Errorf("Expected E180 first, got %s", got)
	}
	for _, p := range []string{"3.1", "3.9", "4.7", "5.7"} {
		if !v.IsPrefix(p) {
			t.Errorf("Expected %s to be a thickness prefix", p)
		}
	}

	suffixes := v.Suffixes()
	suffixes[0] = "CHANGED"
	if v.Suffixes()[0] != "E180" {
		t.Error("Suffixes must return a copy")
	}
}

func TestParseVocabularyErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"empty anchor", "prefixes: [\"3.9\"]\nsuffixes: [E180]", true},
		{"no prefixes", "anchor: cut>\nsuffixes: [E180]", true},
		{"no suffixes", "anchor: cut>\nprefixes: [\"3.9\"]", true},
		{"lower case suffix", "anchor: cut>\nprefixes: [\"3.9\"]\nsuffixes: [e180]", true},
		{"duplicate suffix", "anchor: cut>\nprefixes: [\"3.9\"]\nsuffixes: [E180, E180]", true},
		{"single letter split", "anchor: cut>\nprefixes: [\"3.9\"]\nsuffixes: [E180]\nletter_splits:\n  - from: C\n    to: C", true},
		{"malformed yaml", "anchor: [", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVocabulary([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if got := errors.Is(err, ErrInvalidVocabulary); got != tt.invalid {
				t.Errorf("Expected errors.Is(ErrInvalidVocabulary)=%v, got %v (%v)", tt.invalid, got, err)
			}
		})
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	content := `anchor: "size>"
prefixes: ["6.0"]
suffixes: [GRY, BRZ]
letter_splits:
  - from: "S T D"
    to: STD
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write vocabulary: %v", err)
	}

	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary failed: %v", err)
	}

	got := NewExtractor(v).Extract("PO 123-456\nSIZE> \n6.0 S T D GRY\n20 x 30")
	expected := Fields{Thickness: "6.0", GlassType: "STD", Tint: "GRY", Size: "20 x 30", PO: "123-456"}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	if _, err := LoadVocabulary(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
