package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader reads labelled label transcripts from disk
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads every sample from a dataset file (JSONL or Parquet)
func (l *Loader) Load() ([]LabelSample, error) {
	return l.load(-1, nil)
}

// LoadSample loads at most limit samples. A negative limit loads everything.
func (l *Loader) LoadSample(limit int) ([]LabelSample, error) {
	return l.load(limit, nil)
}

// LoadWithFilter loads the samples for which filterFn returns true
func (l *Loader) LoadWithFilter(filterFn func(*LabelSample) bool) ([]LabelSample, error) {
	return l.load(-1, filterFn)
}

func (l *Loader) load(limit int, filterFn func(*LabelSample) bool) ([]LabelSample, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	keep := func(*LabelSample) bool { return true }
	if filterFn != nil {
		keep = filterFn
	}

	switch ext {
	case ".parquet":
		return l.loadParquet(limit, keep)
	case ".jsonl", ".json":
		return l.loadJSONL(limit, keep)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func full(records []LabelSample, limit int) bool {
	return limit >= 0 && len(records) >= limit
}

// loadJSONL loads samples from a JSONL file. Malformed lines are skipped with
// a warning.
func (l *Loader) loadJSONL(limit int, keep func(*LabelSample) bool) ([]LabelSample, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []LabelSample
	scanner := bufio.NewScanner(file)

	// Transcripts are short but photos can be inlined by other tools
	const maxCapacity = 10 * 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for !full(records, limit) && scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record LabelSample
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			slog.Warn("Skipping malformed dataset line", "line", lineNum, "err", err)
			continue
		}
		if record.ID == "" {
			record.ID = fmt.Sprintf("line-%d", lineNum)
		}

		if keep(&record) {
			records = append(records, record)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_records", len(records), "total_lines", lineNum)
	return records, nil
}

// loadParquet loads samples from a Parquet file
func (l *Loader) loadParquet(limit int, keep func(*LabelSample) bool) ([]LabelSample, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[LabelSample](pf)
	defer reader.Close()

	var records []LabelSample
	rows := make([]LabelSample, 128)
	rowNum := 0

	for !full(records, limit) {
		n, err := reader.Read(rows)
		for i := 0; i < n && !full(records, limit); i++ {
			rowNum++
			if rows[i].ID == "" {
				rows[i].ID = fmt.Sprintf("row-%d", rowNum)
			}
			if keep(&rows[i]) {
				records = append(records, rows[i])
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(records), "rows_read", rowNum)
	return records, nil
}
