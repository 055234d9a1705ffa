package labels

import "strings"

// OCRErrorPrefix marks a transcript that carries a transcription failure
// instead of label text.
const OCRErrorPrefix = "OCR_ERROR:"

// Extractor reads label fields against one vocabulary. The zero value is not
// usable; construct it with NewExtractor.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor returns an extractor for v. A nil vocabulary selects the
// embedded default.
func NewExtractor(v *Vocabulary) *Extractor {
	if v == nil {
		v = DefaultVocabulary()
	}
	return &Extractor{vocab: v}
}

// Vocabulary returns the vocabulary the extractor matches against.
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Extract reads the six label fields from a raw OCR transcript. Fields that
// cannot be read are left empty.
func (e *Extractor) Extract(raw string) Fields {
	return e.Trace(raw).Fields
}

// Trace records the intermediate state of every extraction stage.
type Trace struct {
	Lines              []string     `json:"lines" yaml:"lines"`
	Anchor             int          `json:"anchor" yaml:"anchor"`
	TypeLine           string       `json:"type_line" yaml:"type_line"`
	NormalizedTypeLine string       `json:"normalized_type_line" yaml:"normalized_type_line"`
	Tokens             []string     `json:"tokens" yaml:"tokens"`
	TintScores         []TokenScore `json:"tint_scores" yaml:"tint_scores"`
	SizeLine           string       `json:"size_line" yaml:"size_line"`
	Fields             Fields       `json:"fields" yaml:"fields"`
}

// Trace runs the extraction pipeline and returns every intermediate value
// alongside the resulting fields.
func (e *Extractor) Trace(raw string) Trace {
	seg := Segment(raw, e.vocab.anchor)
	tr := Trace{
		Lines:  seg.Lines,
		Anchor: seg.Anchor,
	}

	if typeLine := seg.TypeLine(); typeLine != "" {
		tr.TypeLine = typeLine
		tr.NormalizedTypeLine = e.vocab.NormalizeTypeLine(typeLine)
		tr.Tokens = strings.Fields(tr.NormalizedTypeLine)

		parts, scores := e.vocab.decomposeType(typeLine)
		tr.TintScores = scores
		tr.Fields.Thickness = parts.Thickness
		tr.Fields.GlassType = parts.GlassType
		tr.Fields.Tint = parts.Tint

		rest := seg.AfterType()
		size, idx := findSize(rest)
		tr.Fields.Size = size
		if idx >= 0 {
			tr.SizeLine = rest[idx]
		}
	}

	tr.Fields.Tag = ExtractTag(raw)
	tr.Fields.PO = ExtractPO(raw)
	return tr
}

var defaultExtractor = NewExtractor(nil)

// Extract reads label fields with the embedded vocabulary.
func Extract(raw string) Fields {
	return defaultExtractor.Extract(raw)
}

// IsOCRError reports whether raw is a transcription failure marker.
func IsOCRError(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), OCRErrorPrefix)
}
