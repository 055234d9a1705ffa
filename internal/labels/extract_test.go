package labels

import (
	"reflect"
	"sync"
	"testing"
)

const sampleTranscript = `ORDER 35789-000
cut>
3.9 CLT Q18O
42 5/16 x 85 7/16
TAG 172819`

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Fields
	}{
		{
			name: "full label",
			raw:  sampleTranscript,
			expected: Fields{
				Thickness: "3.9",
				GlassType: "CLT",
				Tint:      "Q180",
				Size:      "42 5/16 x 85 7/16",
				Tag:       "172819",
				PO:        "35789-000",
			},
		},
		{
			name: "no anchor keeps tag and po",
			raw:  "ORDER 35789-000\n3.9 CLT Q180\n42 x 85\nTAG 172819",
			expected: Fields{
				Tag: "172819",
				PO:  "35789-000",
			},
		},
		{
			name: "anchor on last line",
			raw:  "TAG 172819\ncut>",
			expected: Fields{
				Tag: "172819",
			},
		},
		{
			name: "anchor case insensitive with crlf",
			raw:  "CUT> 2 PCS\r\n\r\n39 C L T E18O\r\n2024-05-01\r\n30 x 40\r\n",
			expected: Fields{
				Thickness: "3.9",
				GlassType: "CLT",
				Tint:      "E180",
				Size:      "30 x 40",
			},
		},
		{
			name: "size before type line ignored",
			raw:  "12 x 14\ncut>\n5.7 CLA BRZ",
			expected: Fields{
				Thickness: "5.7",
				GlassType: "CLA",
				Tint:      "BRZ",
			},
		},
		{
			name:     "ocr error",
			raw:      "OCR_ERROR: request timed out",
			expected: Fields{},
		},
		{
			name:     "empty",
			raw:      "",
			expected: Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.raw)
			if got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestTrace(t *testing.T) {
	tr := NewExtractor(nil).Trace(sampleTranscript)

	if tr.Anchor != 1 {
		t.Errorf("Expected anchor 1, got %d", tr.Anchor)
	}
	if len(tr.Lines) != 5 {
		t.Errorf("Expected 5 lines, got %d", len(tr.Lines))
	}
	if tr.TypeLine != "3.9 CLT Q18O" {
		t.Errorf("Expected type line %q, got %q", "3.9 CLT Q18O", tr.TypeLine)
	}
	if !reflect.DeepEqual(tr.Tokens, []string{"3.9", "CLT", "Q18O"}) {
		t.Errorf("Unexpected tokens: %v", tr.Tokens)
	}
	if len(tr.TintScores) != 3 {
		t.Fatalf("Expected 3 tint scores, got %d", len(tr.TintScores))
	}
	best := tr.TintScores[2]
	if best.Entry != "Q180" || best.Score != 3 {
		t.Errorf("Expected Q18O to score 3 against Q180, got %+v", best)
	}
	if tr.SizeLine != "42 5/16 x 85 7/16" {
		t.Errorf("Expected size line, got %q", tr.SizeLine)
	}
	if tr.Fields != Extract(sampleTranscript) {
		t.Errorf("Trace fields %+v differ from Extract", tr.Fields)
	}
}

func TestExtractConcurrent(t *testing.T) {
	want := Extract(sampleTranscript)

	var wg sync.WaitGroup
	errs := make(chan Fields, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Extract(sampleTranscript); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestIsOCRError(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"OCR_ERROR: quota exceeded", true},
		{"  OCR_ERROR:", true},
		{"cut>\n3.9 CLT", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsOCRError(tt.raw); got != tt.expected {
			t.Errorf("IsOCRError(%q): expected %v, got %v", tt.raw, tt.expected, got)
		}
	}
}
