package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/util"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Report bundles an evaluation's results with the derived aggregates for output.
type Report struct {
	Evaluation evalapi.Evaluation          `json:"evaluation" yaml:"evaluation"`
	Totals     Totals                      `json:"totals" yaml:"totals"`
	ModelStats []ModelStat                 `json:"model_stats" yaml:"model_stats"`
	Results    []evalapi.Result            `json:"results" yaml:"results"`
	Metrics    []evalapi.PerformanceMetric `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// NewReport derives a Report from the evaluation and its detailed results.
func NewReport(eval evalapi.Evaluation, detail evalapi.EvaluationResults) Report {
	if detail.EvaluationRun != nil && eval.ID == 0 {
		eval = *detail.EvaluationRun
	}
	return Report{
		Evaluation: eval,
		Totals:     Summarize(detail.Results),
		ModelStats: Aggregate(detail.Results),
		Results:    detail.Results,
		Metrics:    detail.Metrics,
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(out io.Writer, r Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes r as YAML.
func WriteYAML(out io.Writer, r Report) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteMarkdown writes r as a Markdown document with a model summary and a results table.
func WriteMarkdown(out io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Evaluation.Name)
	fmt.Fprintf(&b, "- Evaluation ID: %d\n", r.Evaluation.ID)
	fmt.Fprintf(&b, "- Status: %s\n", r.Evaluation.Status)
	fmt.Fprintf(&b, "- Created: %s\n", util.FormatTimestamp(r.Evaluation.CreatedAt))
	fmt.Fprintf(&b, "- Results: %d (%d successful, %s)\n", r.Totals.Results, r.Totals.Successful, util.FormatPercent(r.Totals.SuccessRate))
	fmt.Fprintf(&b, "- Total cost: %s\n\n", util.FormatCurrency(r.Totals.TotalCost))

	b.WriteString("## Models\n\n")
	b.WriteString("| Model | Tests | Mean Accuracy | Mean Latency | Total Cost | Success Rate |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range r.ModelStats {
		fmt.Fprintf(&b, "| %s | %d | %.3f | %s | %s | %s |\n",
			markdownCell(s.Model), s.Count, s.MeanAccuracy, util.FormatLatency(s.MeanLatencyMS),
			util.FormatCurrency(s.TotalCost), util.FormatPercent(s.SuccessRate))
	}

	b.WriteString("\n## Results\n\n")
	b.WriteString("| Model | Test Case | Category | Accuracy | Latency | Cost | Error |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, row := range r.Results {
		fmt.Fprintf(&b, "| %s | %s | %s | %.3f | %s | %s | %s |\n",
			markdownCell(row.ModelName), markdownCell(row.TestCaseName), markdownCell(row.Category),
			row.AccuracyScore, util.FormatLatency(row.ResponseTimeMS), util.FormatCurrency(row.CostUSD),
			markdownCell(row.Error))
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Write renders r to out in format: json, yaml (yml) or md (markdown).
func Write(out io.Writer, format string, r Report) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		return WriteJSON(out, r)
	case "yaml", "yml":
		return WriteYAML(out, r)
	case "md", "markdown":
		return WriteMarkdown(out, r)
	default:
		return fmt.Errorf("%w %q (use json, yaml or md)", ErrUnsupportedFormat, format)
	}
}

// ExportFile writes r to path, choosing the format from the extension.
func ExportFile(path string, r Report) error {
	var buf bytes.Buffer
	if err := Write(&buf, filepath.Ext(path), r); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
