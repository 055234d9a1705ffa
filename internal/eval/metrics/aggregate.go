package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
)

// EvaluationResult is the outcome of extracting one dataset sample
type EvaluationResult struct {
	ID             string           `json:"id"`
	Transcript     string           `json:"transcript"`
	Expected       labels.Fields    `json:"expected"`
	Actual         labels.Fields    `json:"actual"`
	Comparison     *LabelComparison `json:"comparison,omitempty"`
	Issues         []labels.Issue   `json:"issues,omitempty"`
	ProcessingTime time.Duration    `json:"processing_time_ns"`
	Error          string           `json:"error,omitempty"` // If transcription failed
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords   int `json:"total_records"`
	SuccessCount   int `json:"success_count"`
	FailureCount   int `json:"failure_count"`
	PerfectRecords int `json:"perfect_records"`

	// Field-level statistics keyed by field name
	FieldAccuracy map[string]*FieldStats `json:"field_accuracy"`

	OverallAccuracy float64 `json:"overall_accuracy"`

	AverageProcessingTime time.Duration `json:"average_processing_time_ns"`
	TotalProcessingTime   time.Duration `json:"total_processing_time_ns"`

	Results []EvaluationResult `json:"results"`

	EvaluationDate time.Time `json:"evaluation_date"`
	Source         string    `json:"source"` // "transcript" or the OCR provider
	Model          string    `json:"model,omitempty"`
	SampleSize     int       `json:"sample_size"`
}

// FieldStats contains statistics for one label field
type FieldStats struct {
	ExactMatches  int       `json:"exact_matches"`
	FuzzyMatches  int       `json:"fuzzy_matches"`
	NoMatches     int       `json:"no_matches"`
	MissingFields int       `json:"missing_fields"`
	Spurious      int       `json:"spurious"`
	BothEmpty     int       `json:"both_empty"`
	AverageScore  float64   `json:"average_score"`
	Scores        []float64 `json:"-"`
}

// AggregateEvaluationResults aggregates multiple evaluation results
func AggregateEvaluationResults(results []EvaluationResult, source, model string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Results:        results,
		EvaluationDate: time.Now(),
		Source:         source,
		Model:          model,
		SampleSize:     len(results),
		FieldAccuracy:  make(map[string]*FieldStats, len(labels.FieldNames)),
	}
	for _, name := range labels.FieldNames {
		agg.FieldAccuracy[name] = &FieldStats{Scores: []float64{}}
	}

	totalOverallScore := 0.0
	var totalDuration time.Duration
	var successDuration time.Duration

	for _, result := range results {
		totalDuration += result.ProcessingTime

		if result.Error != "" {
			agg.FailureCount++
			continue
		}

		agg.SuccessCount++
		successDuration += result.ProcessingTime

		if result.Comparison == nil {
			continue
		}

		for _, name := range labels.FieldNames {
			aggregateFieldStats(agg.FieldAccuracy[name], result.Comparison.Fields[name])
		}
		if result.Comparison.Perfect() {
			agg.PerfectRecords++
		}
		totalOverallScore += result.Comparison.OverallScore
	}

	if agg.SuccessCount > 0 {
		for _, stats := range agg.FieldAccuracy {
			stats.AverageScore = calculateAverage(stats.Scores)
		}
		agg.OverallAccuracy = totalOverallScore / float64(agg.SuccessCount)
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}

	agg.TotalProcessingTime = totalDuration

	return agg
}

// aggregateFieldStats updates field statistics
func aggregateFieldStats(stats *FieldStats, match FieldMatch) {
	stats.Scores = append(stats.Scores, match.Score)

	switch match.Method {
	case MethodExact:
		stats.ExactMatches++
	case MethodFuzzyHigh, MethodFuzzyMedium:
		stats.FuzzyMatches++
	case MethodNoMatch:
		stats.NoMatches++
	case MethodActualMissing:
		stats.MissingFields++
	case MethodExpectedMissing:
		stats.Spurious++
	case MethodBothMissing:
		stats.BothEmpty++
	}
}

// calculateAverage calculates the average of a slice of scores
func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// PrintSummary writes a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "LABEL EXTRACTION EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Source: %s\n", a.Source)
	if a.Model != "" {
		fmt.Fprintf(w, "Model: %s\n", a.Model)
	}
	fmt.Fprintf(w, "Sample Size: %d records\n", a.SampleSize)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROCESSING STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Total Records: %d\n", a.TotalRecords)
	fmt.Fprintf(w, "Successful: %d (%.1f%%)\n", a.SuccessCount, percent(a.SuccessCount, a.TotalRecords))
	fmt.Fprintf(w, "Failed: %d (%.1f%%)\n", a.FailureCount, percent(a.FailureCount, a.TotalRecords))
	fmt.Fprintf(w, "Perfect Extractions: %d (%.1f%%)\n", a.PerfectRecords, percent(a.PerfectRecords, a.SuccessCount))
	fmt.Fprintf(w, "Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Fprintf(w, "Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FIELD-LEVEL ACCURACY")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, name := range labels.FieldNames {
		printFieldStats(w, name, a.FieldAccuracy[name])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERALL SCORE")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Overall Accuracy: %.2f%% (%.3f)\n", a.OverallAccuracy*100, a.OverallAccuracy)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

func printFieldStats(w io.Writer, fieldName string, stats *FieldStats) {
	if stats == nil {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", fieldName)
	fmt.Fprintf(w, "  Average Score: %.2f%% (%.3f)\n", stats.AverageScore*100, stats.AverageScore)
	fmt.Fprintf(w, "  Exact Matches: %d\n", stats.ExactMatches)
	fmt.Fprintf(w, "  Fuzzy Matches: %d\n", stats.FuzzyMatches)
	fmt.Fprintf(w, "  No Matches: %d\n", stats.NoMatches)
	fmt.Fprintf(w, "  Missing: %d\n", stats.MissingFields)
	fmt.Fprintf(w, "  Spurious: %d\n", stats.Spurious)
	fmt.Fprintf(w, "  Correctly Empty: %d\n", stats.BothEmpty)
}

// SaveToJSON saves the aggregate results to a JSON file
func (a *AggregateResults) SaveToJSON(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(a); err != nil {
		return fmt.Errorf("failed to encode results to JSON: %w", err)
	}

	return nil
}

// SaveDetailedReport saves a detailed report with individual results
func (a *AggregateResults) SaveDetailedReport(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "LABEL EXTRACTION DETAILED REPORT\n")
	fmt.Fprintf(file, "Generated: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Source: %s\n", a.Source)
	separator := strings.Repeat("=", 80)
	fmt.Fprintf(file, "%s\n\n", separator)

	dash := strings.Repeat("-", 80)
	for i, result := range a.Results {
		fmt.Fprintf(file, "RECORD %d: %s\n", i+1, result.ID)
		fmt.Fprintf(file, "%s\n", dash)
		fmt.Fprintf(file, "Transcript:\n%s\n", indent(result.Transcript))
		fmt.Fprintf(file, "Processing Time: %s\n", result.ProcessingTime)

		if result.Error != "" {
			fmt.Fprintf(file, "ERROR: %s\n", result.Error)
		} else if result.Comparison != nil {
			fmt.Fprintf(file, "\nField Comparisons:\n")
			for _, name := range labels.FieldNames {
				m := result.Comparison.Fields[name]
				fmt.Fprintf(file, "  %-11s %.2f (%s) - Expected: %q, Actual: %q\n",
					name+":", m.Score, m.Method, m.Expected, m.Actual)
			}
			fmt.Fprintf(file, "\nOverall Score: %.2f%%\n", result.Comparison.OverallScore*100)
		}

		fmt.Fprintf(file, "\n%s\n\n", separator)
	}

	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
