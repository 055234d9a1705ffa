// Package export writes label data to Excel workbooks.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
	"github.com/xuri/excelize/v2"
)

// Table is one worksheet: a header row followed by data rows.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
	// Widths maps a column letter to its width.
	Widths map[string]float64
}

// Workbook renders the tables into an xlsx file, one sheet per table, with
// the first table active.
func Workbook(tables ...Table) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(t.Sheet); err != nil {
			return nil, err
		}
		if err := writeTable(f, t); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", t.Sheet, err)
		}
	}

	activeIndex, _ := f.GetSheetIndex(tables[0].Sheet)
	f.SetActiveSheet(activeIndex)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, t Table) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(t.Sheet, cell, h); err != nil {
			return err
		}
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		_ = f.SetCellStyle(t.Sheet, "A1", last, bold)
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(t.Sheet, cell, v); err != nil {
				return err
			}
		}
	}

	for col, width := range t.Widths {
		_ = f.SetColWidth(t.Sheet, col, col, width)
	}
	return nil
}

// BatchTable lays out a damage report batch the way the line reports it:
// one row per label.
func BatchTable(batch *models.LabelBatch) Table {
	t := Table{
		Sheet: "Damage Report",
		Headers: []string{
			"Date", "Tag", "PO", "Size", "Thickness", "Glass Type", "Tint",
			"Qty", "Reason", "Notes", "Needs Review", "Photo",
		},
		Widths: map[string]float64{
			"A": 18, "B": 12, "C": 12, "D": 18, "E": 10, "F": 14, "G": 12,
			"H": 6, "I": 20, "J": 40, "K": 40, "L": 48,
		},
	}

	for _, item := range batch.Items {
		var review []string
		for _, issue := range item.Issues {
			review = append(review, issue.String())
		}
		t.Rows = append(t.Rows, []any{
			item.CreatedAt.Format(time.DateTime),
			item.Fields.Tag,
			item.Fields.PO,
			item.Fields.Size,
			item.Fields.Thickness,
			item.Fields.GlassType,
			item.Fields.Tint,
			item.Qty,
			string(item.Reason),
			item.Notes,
			strings.Join(review, "; "),
			item.ImageURL,
		})
	}
	return t
}

// BatchXLSX exports a batch as a single-sheet workbook.
func BatchXLSX(batch *models.LabelBatch) ([]byte, error) {
	return Workbook(BatchTable(batch))
}
