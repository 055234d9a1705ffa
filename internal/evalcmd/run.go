package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/eval/dataset"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/eval/metrics"
	resultsutil "github.com/LordAlokPortfolio/KVProductionGlassLine/internal/eval/results"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labeling"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/ocr"
)

const transcriptSource = "transcript"

type runOptions struct {
	DatasetPath  string
	SampleSize   int
	Concurrency  int
	Provider     string
	Model        string
	OutputJSON   string
	OutputReport string
	SaveYAML     bool
}

func executeRun(ctx context.Context, svc *labeling.Service, opts runOptions, out io.Writer) (*metrics.AggregateResults, error) {
	source := transcriptSource
	if opts.Provider != "" {
		opts.Provider, opts.Model = ocr.ResolveProvider(opts.Provider, opts.Model)
		source = opts.Provider
	}

	slog.Info("Starting evaluation run",
		"dataset", opts.DatasetPath,
		"sample_size", opts.SampleSize,
		"source", source,
		"model", opts.Model)

	samples, err := dataset.NewLoader(opts.DatasetPath).LoadSample(opts.SampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "samples", len(samples))

	concurrency := max(opts.Concurrency, 1)
	results := make([]metrics.EvaluationResult, len(samples))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, sample := range samples {
		wg.Add(1)
		go func(idx int, sample dataset.LabelSample) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			if ctx.Err() != nil {
				results[idx] = metrics.EvaluationResult{ID: sample.ID, Error: ctx.Err().Error()}
				return
			}

			slog.Debug("Processing sample", "id", sample.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(samples)))
			results[idx] = evaluateSample(ctx, svc, sample, opts)
		}(i, sample)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", err)
	}

	aggregated := metrics.AggregateEvaluationResults(results, source, opts.Model)
	aggregated.PrintSummary(out)

	if opts.OutputJSON != "" {
		if err := aggregated.SaveToJSON(opts.OutputJSON); err != nil {
			return aggregated, err
		}
		fmt.Fprintf(out, "\nResults saved to: %s\n", opts.OutputJSON)
	}
	if opts.OutputReport != "" {
		if err := aggregated.SaveDetailedReport(opts.OutputReport); err != nil {
			return aggregated, err
		}
		fmt.Fprintf(out, "Detailed report saved to: %s\n", opts.OutputReport)
	}
	if opts.SaveYAML {
		path, err := resultsutil.SaveToYAML(resultsutil.EvalConfig{
			Source:      source,
			Model:       opts.Model,
			Vocabulary:  os.Getenv("LABEL_VOCABULARY"),
			DatasetPath: opts.DatasetPath,
			SampleSize:  len(samples),
		}, results)
		if err != nil {
			slog.Warn("Failed to save YAML results", "err", err)
		} else {
			fmt.Fprintf(out, "Run record saved to: %s\n", path)
		}
	}

	if opts.OutputJSON != "" {
		fmt.Fprintf(out, "\nGenerate a report with:\n  glassline eval report --results %s\n", opts.OutputJSON)
	}

	return aggregated, nil
}

// evaluateSample extracts one sample and scores it against its expected fields
func evaluateSample(ctx context.Context, svc *labeling.Service, sample dataset.LabelSample, opts runOptions) metrics.EvaluationResult {
	start := time.Now()
	result := metrics.EvaluationResult{
		ID:       sample.ID,
		Expected: sample.Expected(),
	}

	var item models.LabelItem
	if opts.Provider != "" {
		if sample.ImagePath == "" {
			result.Error = "no image available for transcription"
			result.ProcessingTime = time.Since(start)
			return result
		}
		image, err := os.ReadFile(sample.ImagePath)
		if err != nil {
			result.Error = fmt.Sprintf("failed to read image: %v", err)
			result.ProcessingTime = time.Since(start)
			return result
		}
		item = svc.ReadLabel(ctx, image, opts.Provider, opts.Model)
	} else {
		item = svc.ReadTranscript(sample.Transcript)
	}

	result.Transcript = item.Transcript
	result.Actual = item.Fields
	result.Issues = item.Issues
	result.ProcessingTime = time.Since(start)

	if labels.IsOCRError(item.Transcript) {
		result.Error = item.Transcript
		return result
	}

	result.Comparison = metrics.CompareFields(result.Expected, result.Actual)
	return result
}
