package evalcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/eval/dataset"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labeling"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
)

const goodTranscript = `ORDER 35789-000
cut>
3.9 CLT Q18O
42 5/16 x 85 7/16
TAG 172819`

type stubTranscriber struct {
	text string
}

func (s stubTranscriber) Transcribe(ctx context.Context, image []byte, provider, model string) string {
	return s.text
}

func writeDataset(t *testing.T, samples []dataset.LabelSample) string {
	t.Helper()
	var buf bytes.Buffer
	for _, s := range samples {
		line, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "labels.jsonl")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testSamples() []dataset.LabelSample {
	return []dataset.LabelSample{
		{
			ID:         "good",
			Transcript: goodTranscript,
			Thickness:  "3.9",
			GlassType:  "CLT",
			Tint:       "Q180",
			Size:       "42 5/16 x 85 7/16",
			Tag:        "172819",
			PO:         "35789-000",
		},
		{
			ID:         "wrong-tag",
			Transcript: "cut>\n3.9 CLT Q180\n42 x 85\nTAG 172819",
			Thickness:  "3.9",
			GlassType:  "CLT",
			Tint:       "Q180",
			Size:       "42 x 85",
			Tag:        "172818",
		},
	}
}

func TestExecuteRun(t *testing.T) {
	dir := t.TempDir()
	opts := runOptions{
		DatasetPath:  writeDataset(t, testSamples()),
		SampleSize:   -1,
		Concurrency:  2,
		OutputJSON:   filepath.Join(dir, "results.json"),
		OutputReport: filepath.Join(dir, "report.txt"),
	}

	var out bytes.Buffer
	agg, err := executeRun(context.Background(), labeling.NewService(stubTranscriber{}, nil), opts, &out)
	if err != nil {
		t.Fatalf("executeRun failed: %v", err)
	}

	if agg.TotalRecords != 2 {
		t.Errorf("Expected 2 records, got %d", agg.TotalRecords)
	}
	if agg.PerfectRecords != 1 {
		t.Errorf("Expected 1 perfect record, got %d", agg.PerfectRecords)
	}
	if agg.Source != transcriptSource {
		t.Errorf("Expected source %q, got %q", transcriptSource, agg.Source)
	}
	// results keep dataset order regardless of concurrency
	if agg.Results[0].ID != "good" || agg.Results[1].ID != "wrong-tag" {
		t.Errorf("Unexpected result order: %s, %s", agg.Results[0].ID, agg.Results[1].ID)
	}
	if got := agg.Results[1].Comparison.Fields[labels.FieldTag].Method; got != "fuzzy_high" {
		t.Errorf("Expected fuzzy_high tag match, got %q", got)
	}

	for _, path := range []string{opts.OutputJSON, opts.OutputReport} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to be written: %v", path, err)
		}
	}
	if !strings.Contains(out.String(), "LABEL EXTRACTION EVALUATION SUMMARY") {
		t.Error("Expected summary in output")
	}
}

func TestExecuteRunWithProvider(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "label.jpg")
	if err := os.WriteFile(imagePath, []byte("not really a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	samples := testSamples()
	samples[0].ImagePath = imagePath

	tests := []struct {
		name         string
		transcript   string
		wantFailures int
		wantPerfect  int
	}{
		{"transcribed", goodTranscript, 1, 1},
		{"ocr error", "OCR_ERROR: connection refused", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := runOptions{
				DatasetPath: writeDataset(t, samples),
				SampleSize:  -1,
				Concurrency: 1,
				Provider:    "ollama",
				Model:       "llava",
			}

			var out bytes.Buffer
			agg, err := executeRun(context.Background(), labeling.NewService(stubTranscriber{text: tt.transcript}, nil), opts, &out)
			if err != nil {
				t.Fatalf("executeRun failed: %v", err)
			}
			if agg.FailureCount != tt.wantFailures {
				t.Errorf("Expected %d failures, got %d", tt.wantFailures, agg.FailureCount)
			}
			if agg.PerfectRecords != tt.wantPerfect {
				t.Errorf("Expected %d perfect records, got %d", tt.wantPerfect, agg.PerfectRecords)
			}
			if agg.Source != "ollama" || agg.Model != "llava" {
				t.Errorf("Unexpected source/model %q/%q", agg.Source, agg.Model)
			}
			// second sample has no image
			if agg.Results[1].Error != "no image available for transcription" {
				t.Errorf("Unexpected error for imageless sample: %q", agg.Results[1].Error)
			}
		})
	}
}

func TestExecuteRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := runOptions{DatasetPath: writeDataset(t, testSamples()), SampleSize: -1, Concurrency: 1}
	var out bytes.Buffer
	if _, err := executeRun(ctx, labeling.NewService(stubTranscriber{}, nil), opts, &out); err == nil {
		t.Error("Expected error for cancelled run")
	}
}

func saveResults(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	opts := runOptions{
		DatasetPath: writeDataset(t, testSamples()),
		SampleSize:  -1,
		Concurrency: 1,
		OutputJSON:  path,
	}
	var out bytes.Buffer
	if _, err := executeRun(context.Background(), labeling.NewService(stubTranscriber{}, nil), opts, &out); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecuteReport(t *testing.T) {
	resultsPath := saveResults(t)

	tests := []struct {
		format string
		want   string
	}{
		{"text", "Sample ID: wrong-tag"},
		{"json", `"perfect_records": 1`},
		{"csv", "Expected_tag,Actual_tag,Score_tag"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			if err := executeReport(resultsPath, tt.format, "", &out); err != nil {
				t.Fatalf("executeReport failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.want, out.String())
			}
		})
	}

	t.Run("xlsx", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "report.xlsx")
		var out bytes.Buffer
		if err := executeReport(resultsPath, "xlsx", output, &out); err != nil {
			t.Fatalf("executeReport failed: %v", err)
		}
		info, err := os.Stat(output)
		if err != nil || info.Size() == 0 {
			t.Errorf("Expected xlsx file to be written: %v", err)
		}
	})

	t.Run("xlsx without output", func(t *testing.T) {
		var out bytes.Buffer
		if err := executeReport(resultsPath, "xlsx", "", &out); err == nil {
			t.Error("Expected error when xlsx has no output path")
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		var out bytes.Buffer
		if err := executeReport(resultsPath, "pdf", "", &out); err == nil {
			t.Error("Expected error for unsupported format")
		}
	})
}

func TestExecuteInspect(t *testing.T) {
	path := writeDataset(t, testSamples())
	extractor := labels.NewExtractor(nil)

	tests := []struct {
		name    string
		opts    inspectOptions
		want    []string
		notWant []string
	}{
		{
			name: "single sample trace",
			opts: inspectOptions{DatasetPath: path, ID: "good", ShowTrace: true},
			want: []string{"SAMPLE 1/1: good", `Anchor:          line 2 "cut>"`, "Q18O", "score 3"},
		},
		{
			name:    "mismatches only",
			opts:    inspectOptions{DatasetPath: path, OnlyMismatches: true},
			want:    []string{"wrong-tag", "<- mismatch"},
			notWant: []string{": good"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := executeInspect(context.Background(), extractor, tt.opts, strings.NewReader(""), &out); err != nil {
				t.Fatalf("executeInspect failed: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("Expected output to contain %q, got:\n%s", w, out.String())
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out.String(), w) {
					t.Errorf("Expected output not to contain %q", w)
				}
			}
		})
	}

	t.Run("unknown id", func(t *testing.T) {
		var out bytes.Buffer
		opts := inspectOptions{DatasetPath: path, ID: "missing"}
		if err := executeInspect(context.Background(), extractor, opts, strings.NewReader(""), &out); err == nil {
			t.Error("Expected error for unknown sample id")
		}
	})
}
