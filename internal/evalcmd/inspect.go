package evalcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/eval/dataset"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labeling"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	DatasetPath    string
	Limit          int
	ID             string
	Interactive    bool
	ShowTranscript bool
	ShowTrace      bool
	OnlyMismatches bool
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Trace extraction stage by stage for dataset samples",
		Long: `Inspect samples from a parquet or jsonl dataset file.

For every sample the transcript lines, anchor line, repaired cut line, tokens,
tint scores and size line are printed next to the extracted and expected
fields. Useful for working out why a label was misread.`,
		Example: `  # Step through the first 5 samples
  glassline eval inspect --dataset ./labels.jsonl --limit 5 --interactive

  # Trace a single sample
  glassline eval inspect --dataset ./labels.jsonl --id line-42

  # Only samples the extractor gets wrong
  glassline eval inspect --dataset ./labels.parquet --limit 0 --mismatches`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := labeling.VocabularyFromEnv()
			if err != nil {
				return err
			}

			// Create a context that gets canceled on an interrupt signal (Ctrl+C)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeInspect(ctx, labels.NewExtractor(v), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.DatasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "Number of samples to inspect (0 for all)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "Only inspect the sample with this ID")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "Pause after each sample (press Enter to continue)")
	cmd.Flags().BoolVar(&opts.ShowTranscript, "transcript", true, "Show the raw transcript")
	cmd.Flags().BoolVar(&opts.ShowTrace, "trace", true, "Show intermediate extraction stages")
	cmd.Flags().BoolVar(&opts.OnlyMismatches, "mismatches", false, "Only show samples with at least one wrong field")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeInspect(ctx context.Context, extractor *labels.Extractor, opts inspectOptions, in io.Reader, out io.Writer) error {
	loader := dataset.NewLoader(opts.DatasetPath)

	var samples []dataset.LabelSample
	var err error
	switch {
	case opts.ID != "":
		samples, err = loader.LoadWithFilter(func(s *dataset.LabelSample) bool { return s.ID == opts.ID })
	case opts.Limit > 0:
		samples, err = loader.LoadSample(opts.Limit)
	default:
		samples, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if opts.ID != "" && len(samples) == 0 {
		return fmt.Errorf("sample %q not found in %s", opts.ID, opts.DatasetPath)
	}

	fmt.Fprintf(out, "Loaded %d samples from %s\n", len(samples), opts.DatasetPath)
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)

	for i, sample := range samples {
		// Check for cancellation (e.g., Ctrl+C) at the start of each iteration
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInspection interrupted.")
			return nil
		default:
		}

		tr := extractor.Trace(sample.Transcript)
		expected := sample.Expected()
		if opts.OnlyMismatches && tr.Fields == expected {
			continue
		}

		fmt.Fprintf(out, "SAMPLE %d/%d: %s\n", i+1, len(samples), sample.ID)
		fmt.Fprintln(out, strings.Repeat("-", 80))

		if opts.ShowTranscript {
			fmt.Fprintln(out, "TRANSCRIPT:")
			fmt.Fprintln(out, sample.Transcript)
			fmt.Fprintln(out, strings.Repeat("-", 80))
		}

		if opts.ShowTrace {
			printTrace(out, tr)
		}

		printFieldTable(out, expected, tr.Fields)
		fmt.Fprintln(out)

		if opts.Interactive {
			fmt.Fprint(out, "Press Enter to continue to next sample (or Ctrl+C to quit)...")

			inputCh := make(chan struct{})
			go func() {
				_, _ = reader.ReadString('\n')
				close(inputCh)
			}()

			select {
			case <-ctx.Done():
				fmt.Fprintln(out, "\nInspection interrupted.")
				return nil
			case <-inputCh:
				fmt.Fprintln(out)
			}
		}
	}

	return nil
}

func printTrace(out io.Writer, tr labels.Trace) {
	if tr.Anchor < 0 {
		fmt.Fprintln(out, "Anchor:          not found")
	} else {
		fmt.Fprintf(out, "Anchor:          line %d %q\n", tr.Anchor+1, tr.Lines[tr.Anchor])
	}
	fmt.Fprintf(out, "Type line:       %q\n", tr.TypeLine)
	fmt.Fprintf(out, "Normalized:      %q\n", tr.NormalizedTypeLine)
	fmt.Fprintf(out, "Tokens:          %s\n", strings.Join(tr.Tokens, " | "))
	for _, s := range tr.TintScores {
		fmt.Fprintf(out, "  tint candidate %-8s ~ %-8s score %d\n", s.Token, s.Entry, s.Score)
	}
	fmt.Fprintf(out, "Size line:       %q\n", tr.SizeLine)
	fmt.Fprintln(out)
}

func printFieldTable(out io.Writer, expected, actual labels.Fields) {
	fmt.Fprintf(out, "%-11s %-20s %-20s\n", "FIELD", "EXPECTED", "EXTRACTED")
	for _, name := range labels.FieldNames {
		mark := ""
		if expected.Get(name) != actual.Get(name) {
			mark = "  <- mismatch"
		}
		fmt.Fprintf(out, "%-11s %-20s %-20s%s\n", name, expected.Get(name), actual.Get(name), mark)
	}
}
