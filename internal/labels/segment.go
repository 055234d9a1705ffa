package labels

import "strings"

// Segments is a transcript split into trimmed, non-blank lines.
type Segments struct {
	Lines []string
	// Anchor is the index of the first line containing the anchor marker,
	// or -1 when the transcript has none.
	Anchor int
}

// Segment splits raw OCR text into lines and locates the anchor line. The
// marker match is case-insensitive.
func Segment(raw, marker string) Segments {
	seg := Segments{Anchor: -1}
	marker = strings.ToLower(marker)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if seg.Anchor < 0 && marker != "" && strings.Contains(strings.ToLower(line), marker) {
			seg.Anchor = len(seg.Lines)
		}
		seg.Lines = append(seg.Lines, line)
	}
	return seg
}

// HasAnchor reports whether the anchor line was found.
func (s Segments) HasAnchor() bool {
	return s.Anchor >= 0
}

// TypeLine returns the cut specification line that follows the anchor, or
// "" when there is no anchor or nothing after it.
func (s Segments) TypeLine() string {
	if i := s.typeIndex(); i >= 0 {
		return s.Lines[i]
	}
	return ""
}

// AfterType returns the lines following the cut specification line.
func (s Segments) AfterType() []string {
	i := s.typeIndex()
	if i < 0 {
		return nil
	}
	return s.Lines[i+1:]
}

func (s Segments) typeIndex() int {
	if !s.HasAnchor() || s.Anchor+1 >= len(s.Lines) {
		return -1
	}
	return s.Anchor + 1
}
