package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/eval/metrics"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Source      string `yaml:"source"`
	Model       string `yaml:"model,omitempty"`
	Vocabulary  string `yaml:"vocabulary,omitempty"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier       string             `yaml:"identifier"`
	Transcript       string             `yaml:"transcript"`
	Expected         map[string]string  `yaml:"expected"`
	Actual           map[string]string  `yaml:"actual"`
	OverallScore     float64            `yaml:"overallscore"`
	LevenshteinTotal int                `yaml:"levenshteintotal"`
	FieldsMatched    int                `yaml:"fieldsmatched"`
	FieldsMissing    int                `yaml:"fieldsmissing"`
	FieldsIncorrect  int                `yaml:"fieldsincorrect"`
	FieldScores      map[string]float64 `yaml:"fieldscores"`
	Issues           []string           `yaml:"issues,omitempty"`
}

// EvalSpec represents the complete evaluation file
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// Dir is where evaluation files are written
var Dir = "evals"

// SaveToYAML saves evaluation results to Dir and returns the file path
func SaveToYAML(config EvalConfig, results []metrics.EvaluationResult) (string, error) {
	if err := os.MkdirAll(Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	if config.Timestamp == "" {
		config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	spec := EvalSpec{
		Config:  config,
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		if r.Error != "" {
			continue // Skip failed evaluations
		}

		evalResult := EvalResult{
			Identifier: r.ID,
			Transcript: r.Transcript,
			Expected:   fieldMap(r.Expected.Get),
			Actual:     fieldMap(r.Actual.Get),
		}
		for _, issue := range r.Issues {
			evalResult.Issues = append(evalResult.Issues, issue.String())
		}

		if r.Comparison != nil {
			evalResult.OverallScore = r.Comparison.OverallScore
			evalResult.LevenshteinTotal = r.Comparison.LevenshteinTotal
			evalResult.FieldsMatched = r.Comparison.FieldsMatched
			evalResult.FieldsMissing = r.Comparison.FieldsMissing
			evalResult.FieldsIncorrect = r.Comparison.FieldsIncorrect

			evalResult.FieldScores = make(map[string]float64, len(r.Comparison.Fields))
			for name, match := range r.Comparison.Fields {
				evalResult.FieldScores[name] = match.Score
			}
		}

		spec.Results = append(spec.Results, evalResult)
	}

	filename := filepath.Join(Dir, fmt.Sprintf("%s-%s.yaml", fileLabel(config), config.Timestamp))

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}

// LoadFromYAML reads an evaluation file written by SaveToYAML
func LoadFromYAML(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read eval file: %w", err)
	}
	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse eval file: %w", err)
	}
	return &spec, nil
}

func fieldMap(get func(string) string) map[string]string {
	m := make(map[string]string)
	for _, name := range labels.FieldNames {
		if v := get(name); v != "" {
			m[name] = v
		}
	}
	return m
}

// fileLabel names the eval file after the model, or the source when there is
// none. Path separators and colons in model names are replaced.
func fileLabel(config EvalConfig) string {
	label := config.Model
	if label == "" {
		label = config.Source
	}
	if label == "" {
		label = "eval"
	}
	return strings.NewReplacer("/", "_", ":", "_").Replace(label)
}
