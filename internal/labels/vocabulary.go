package labels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// ErrInvalidVocabulary is returned when a vocabulary file breaks one of the
// dictionary invariants.
var ErrInvalidVocabulary = errors.New("invalid label vocabulary")

var defaultVocabulary = mustParseVocabulary(defaultVocabularyYAML)

// LetterSplit repairs a known token whose letters OCR separated with spaces,
// e.g. "C L T" -> "CLT".
type LetterSplit struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type vocabularyFile struct {
	Anchor       string        `yaml:"anchor"`
	Prefixes     []string      `yaml:"prefixes"`
	Suffixes     []string      `yaml:"suffixes"`
	LetterSplits []LetterSplit `yaml:"letter_splits"`
}

type splitRule struct {
	pattern *regexp.Regexp
	to      string
}

// Vocabulary is the controlled vocabulary the extractor reconciles OCR text
// against. It is immutable once constructed and safe for concurrent use.
type Vocabulary struct {
	anchor   string
	prefixes []string
	suffixes []string
	splits   []splitRule
}

// DefaultVocabulary returns the embedded vocabulary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// LoadVocabulary reads a YAML vocabulary file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary decodes and validates a YAML vocabulary document.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	v := &Vocabulary{
		anchor:   strings.TrimSpace(file.Anchor),
		prefixes: slices.Clone(file.Prefixes),
		suffixes: slices.Clone(file.Suffixes),
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	for _, ls := range file.LetterSplits {
		letters := strings.Fields(ls.From)
		if len(letters) < 2 || strings.TrimSpace(ls.To) == "" {
			return nil, fmt.Errorf("%w: letter split %q -> %q", ErrInvalidVocabulary, ls.From, ls.To)
		}
		quoted := make([]string, len(letters))
		for i, l := range letters {
			quoted[i] = regexp.QuoteMeta(l)
		}
		v.splits = append(v.splits, splitRule{
			pattern: regexp.MustCompile(`(?i)\b` + strings.Join(quoted, `\s+`) + `\b`),
			to:      strings.TrimSpace(ls.To),
		})
	}

	return v, nil
}

func mustParseVocabulary(data []byte) *Vocabulary {
	v, err := ParseVocabulary(data)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the dictionary invariants: an anchor marker, at least one
// thickness prefix, and a non-empty, upper-case, duplicate-free suffix list.
func (v *Vocabulary) Validate() error {
	if v.anchor == "" {
		return fmt.Errorf("%w: anchor marker is empty", ErrInvalidVocabulary)
	}
	if len(v.prefixes) == 0 {
		return fmt.Errorf("%w: no thickness prefixes", ErrInvalidVocabulary)
	}
	if len(v.suffixes) == 0 {
		return fmt.Errorf("%w: suffix dictionary is empty", ErrInvalidVocabulary)
	}

	seen := make(map[string]struct{}, len(v.suffixes))
	for _, s := range v.suffixes {
		if s == "" {
			return fmt.Errorf("%w: empty suffix entry", ErrInvalidVocabulary)
		}
		if s != strings.ToUpper(s) {
			return fmt.Errorf("%w: suffix %q is not upper-case", ErrInvalidVocabulary, s)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: duplicate suffix %q", ErrInvalidVocabulary, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// Anchor returns the marker that introduces the cut specification line.
func (v *Vocabulary) Anchor() string { return v.anchor }

// Prefixes returns a copy of the valid thickness tokens.
func (v *Vocabulary) Prefixes() []string { return slices.Clone(v.prefixes) }

// Suffixes returns a copy of the tint suffix dictionary in match order.
func (v *Vocabulary) Suffixes() []string { return slices.Clone(v.suffixes) }

// IsPrefix reports whether s is one of the known thickness tokens.
func (v *Vocabulary) IsPrefix(s string) bool {
	return slices.Contains(v.prefixes, s)
}

func (v *Vocabulary) repairLetterSplits(s string) string {
	for _, r := range v.splits {
		s = r.pattern.ReplaceAllString(s, r.to)
	}
	return s
}
