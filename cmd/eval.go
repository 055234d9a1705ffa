package cmd

import (
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Label extraction evaluation tools",
		Long: `Evaluation tools for measuring how accurately label fields are extracted.

Runs the extractor over a dataset of labelled transcripts (.jsonl or .parquet),
compares every field against the expected value, and reports per-field
accuracy. The inspect command traces each extraction stage for one record.`,
	}

	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())
	cmd.AddCommand(evalcmd.NewInspectCmd())

	return cmd
}
