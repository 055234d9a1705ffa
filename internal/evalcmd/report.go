package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/eval/metrics"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/export"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
)

func executeReport(resultsPath, format, output string, stdout io.Writer) error {
	results, err := loadResults(resultsPath)
	if err != nil {
		return err
	}

	if format == "xlsx" {
		if output == "" {
			return fmt.Errorf("--output is required for xlsx reports")
		}
		data, err := xlsxReport(results)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(stdout, "Report saved to: %s\n", output)
		return nil
	}

	w := stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		w = file
	}

	switch format {
	case "text":
		return printTextReport(w, results)
	case "json":
		return printJSONReport(w, results)
	case "csv":
		return printCSVReport(w, results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func loadResults(path string) (*metrics.AggregateResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	var results metrics.AggregateResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return &results, nil
}

func printTextReport(w io.Writer, results *metrics.AggregateResults) error {
	results.PrintSummary(w)

	fmt.Fprintln(w, "\nDetailed Results:")
	fmt.Fprintln(w, "========================================")

	for i, result := range results.Results {
		fmt.Fprintf(w, "\n[%d] Sample ID: %s\n", i+1, result.ID)

		if result.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", result.Error)
			continue
		}
		if result.Comparison == nil {
			continue
		}

		fmt.Fprintf(w, "  Overall Score: %.2f%%\n", result.Comparison.OverallScore*100)

		// Only fields that were not read correctly
		for _, name := range labels.FieldNames {
			m := result.Comparison.Fields[name]
			if m.Score >= 0.8 {
				continue
			}
			fmt.Fprintf(w, "  %s (%s):\n", name, m.Method)
			fmt.Fprintf(w, "    Expected:  %s\n", truncate(m.Expected, 80))
			fmt.Fprintf(w, "    Extracted: %s\n", truncate(m.Actual, 80))
		}
	}

	return nil
}

func printJSONReport(w io.Writer, results *metrics.AggregateResults) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func resultHeader() []string {
	header := []string{"ID", "Overall Score", "Fields Missing", "Fields Incorrect", "Error"}
	for _, name := range labels.FieldNames {
		header = append(header, "Expected_"+name, "Actual_"+name, "Score_"+name)
	}
	return header
}

// resultRow is one CSV/XLSX row. Scores stay numeric for spreadsheets.
func resultRow(result metrics.EvaluationResult) []any {
	row := []any{result.ID}
	if result.Error != "" || result.Comparison == nil {
		row = append(row, 0.0, 0, 0, result.Error)
	} else {
		row = append(row,
			result.Comparison.OverallScore,
			result.Comparison.FieldsMissing,
			result.Comparison.FieldsIncorrect,
			"",
		)
	}

	for _, name := range labels.FieldNames {
		score := 0.0
		if result.Comparison != nil {
			score = result.Comparison.Fields[name].Score
		}
		row = append(row, result.Expected.Get(name), result.Actual.Get(name), score)
	}
	return row
}

func printCSVReport(w io.Writer, results *metrics.AggregateResults) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(resultHeader()); err != nil {
		return err
	}

	for _, result := range results.Results {
		row := resultRow(result)
		record := make([]string, len(row))
		for i, v := range row {
			if f, ok := v.(float64); ok {
				record[i] = fmt.Sprintf("%.4f", f)
			} else {
				record[i] = fmt.Sprint(v)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func xlsxReport(results *metrics.AggregateResults) ([]byte, error) {
	summary := export.Table{
		Sheet:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Source", results.Source},
			{"Model", results.Model},
			{"Evaluation Date", results.EvaluationDate.Format("2006-01-02 15:04:05")},
			{"Total Records", results.TotalRecords},
			{"Successful", results.SuccessCount},
			{"Failed", results.FailureCount},
			{"Perfect Extractions", results.PerfectRecords},
			{"Overall Accuracy", results.OverallAccuracy},
		},
		Widths: map[string]float64{"A": 24, "B": 24},
	}
	for _, name := range labels.FieldNames {
		if stats := results.FieldAccuracy[name]; stats != nil {
			summary.Rows = append(summary.Rows, []any{name + " accuracy", stats.AverageScore})
		}
	}

	detail := export.Table{
		Sheet:   "Results",
		Headers: resultHeader(),
		Widths:  map[string]float64{"A": 16, "E": 32},
	}
	for _, result := range results.Results {
		detail.Rows = append(detail.Rows, resultRow(result))
	}

	return export.Workbook(summary, detail)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
