package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labeling"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type extractOutput struct {
	Fields labels.Fields  `json:"fields" yaml:"fields"`
	Issues []labels.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newExtractCmd() *cobra.Command {
	var imagePath string
	var provider string
	var model string
	var format string

	cmd := &cobra.Command{
		Use:   "extract [transcript-file]",
		Short: "Extract label fields from a transcript or photo",
		Long: `Reads a label transcript from a file (or stdin when no file is given) and
prints the extracted fields. With --image, the photo is first transcribed by
the configured OCR provider.`,
		Example: `  # Extract from a transcript file
  glassline extract label.txt

  # Pipe a transcript in and print JSON
  cat label.txt | glassline extract --format json

  # Transcribe a photo with a local Tesseract install
  glassline extract --image label.jpg --provider tesseract`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := labeling.NewServiceFromEnv()
			if err != nil {
				return err
			}

			var item models.LabelItem
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("failed to read image: %w", err)
				}
				item = svc.ReadLabel(cmd.Context(), data, provider, model)
			} else {
				raw, err := readTranscript(cmd.InOrStdin(), args)
				if err != nil {
					return err
				}
				item = svc.ReadTranscript(raw)
			}

			return writeExtractOutput(cmd.OutOrStdout(), format, extractOutput{Fields: item.Fields, Issues: item.Issues})
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Label photo to transcribe before extracting")
	cmd.Flags().StringVar(&provider, "provider", "", "OCR provider for --image (openai, ollama, gemini, tesseract)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")

	return cmd
}

func readTranscript(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}

func writeExtractOutput(w io.Writer, format string, out extractOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case "text":
		for _, name := range labels.FieldNames {
			fmt.Fprintf(w, "%-11s %s\n", name+":", out.Fields.Get(name))
		}
		if len(out.Issues) > 0 {
			fmt.Fprintln(w, "\nNeeds review:")
			for _, issue := range out.Issues {
				fmt.Fprintf(w, "  - %s\n", issue)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (use text, json or yaml)", format)
	}
}
