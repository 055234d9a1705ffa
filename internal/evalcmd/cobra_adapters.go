package evalcmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labeling"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command for evaluating the extractor against a dataset
func NewRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate label extraction against a labelled dataset",
		Long: `Run the label extractor over a dataset of labelled transcripts and compare
every extracted field with the value read off the physical label.

By default the stored transcripts are used, which measures the extractor on
its own. With --provider each sample's image_path is transcribed first, which
measures the OCR provider and the extractor together.`,
		Example: `  # Score the extractor on stored transcripts
  glassline eval run --dataset ./labels.jsonl

  # Transcribe 20 photos with Ollama, four at a time
  glassline eval run --dataset ./labels.parquet --sample 20 --provider ollama --concurrency 4

  # Try a vocabulary change before rolling it out
  LABEL_VOCABULARY=./vocabulary.yaml glassline eval run --dataset ./labels.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.DatasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", opts.DatasetPath)
			}
			if opts.Concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}

			svc, err := labeling.NewServiceFromEnv()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = executeRun(ctx, svc, opts, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&opts.DatasetPath, "dataset", "", "Path to .jsonl or .parquet dataset (required)")
	cmd.Flags().IntVar(&opts.SampleSize, "sample", -1, "Number of samples to evaluate (-1 for all)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "Number of samples evaluated in parallel")
	cmd.Flags().StringVar(&opts.Provider, "provider", "", "Transcribe sample images with this OCR provider (openai, ollama, gemini, tesseract)")
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVar(&opts.OutputJSON, "output-json", "eval_results.json", "Path to output JSON results file")
	cmd.Flags().StringVar(&opts.OutputReport, "output-report", "eval_report.txt", "Path to output detailed report file")
	cmd.Flags().BoolVar(&opts.SaveYAML, "yaml", true, "Also write a YAML run record under evals/")

	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

// NewReportCmd creates the report command for rendering saved results
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved evaluation as text, JSON, CSV or XLSX",
		Example: `  glassline eval report --results eval_results.json
  glassline eval report --results eval_results.json --format csv > results.csv
  glassline eval report --results eval_results.json --format xlsx --output results.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath, format, output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "eval_results.json", "Path to JSON results written by eval run")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, csv, xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (required for xlsx, stdout otherwise)")

	return cmd
}
