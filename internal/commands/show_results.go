package evalboard

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/results"
	"github.com/mwiater/evalboard/internal/util"
	"github.com/spf13/cobra"
)

var (
	showResultsOutput         string
	showResultsExport         string
	showResultsExportMarkdown string
)

// showResultsCmd implements 'show results [id]'. Without an id the most recent
// completed evaluation is shown.
var showResultsCmd = &cobra.Command{
	Use:   "results [id]",
	Short: "Show results and per-model statistics of a completed evaluation",
	Long:  `The 'results' subcommand prints an evaluation's results table and per-model aggregates. Without an id the latest completed evaluation is used. --export and --exportMarkdown also write the report to files.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := evalapi.NewFromConfig(config())
		eval, err := resolveEvaluation(cmd.Context(), client, args)
		if err != nil {
			return err
		}
		detail, err := results.Fetch(cmd.Context(), client, eval.ID)
		if err != nil {
			return err
		}
		report := results.NewReport(eval, detail)

		for _, path := range []string{showResultsExport, showResultsExportMarkdown} {
			if path == "" {
				continue
			}
			if err := results.ExportFile(path, report); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
		}

		out := cmd.OutOrStdout()
		format := strings.ToLower(showResultsOutput)
		if JSONModeEnabled() {
			format = "json"
		}
		switch format {
		case "", "table":
			renderReport(out, report)
			return nil
		default:
			return results.Write(out, format, report)
		}
	},
}

func init() {
	showCmd.AddCommand(showResultsCmd)
	showResultsCmd.Flags().StringVarP(&showResultsOutput, "output", "o", "table", "table, json, yaml or md")
	showResultsCmd.Flags().StringVar(&showResultsExport, "export", "", "also write the report to this file (.json, .yaml or .md)")
	showResultsCmd.Flags().StringVar(&showResultsExportMarkdown, "exportMarkdown", "", "also write the report to this Markdown file")
}

// resolveEvaluation returns the evaluation named in args, or the latest completed one.
func resolveEvaluation(ctx context.Context, client *evalapi.Client, args []string) (evalapi.Evaluation, error) {
	if len(args) == 1 {
		id, err := parseEvaluationID(args[0])
		if err != nil {
			return evalapi.Evaluation{}, err
		}
		return client.Evaluations.Get(ctx, id)
	}
	list, err := client.Evaluations.List(ctx)
	if err != nil {
		return evalapi.Evaluation{}, err
	}
	latest, ok := results.Latest(list)
	if !ok {
		return evalapi.Evaluation{}, fmt.Errorf("no completed evaluations")
	}
	return latest, nil
}

func renderReport(out io.Writer, r results.Report) {
	fmt.Fprintf(out, "%s #%d %s %s\n", headingText("Evaluation"), r.Evaluation.ID, r.Evaluation.Name, statusBadge(r.Evaluation.Status))
	fmt.Fprintf(out, "%d results, %d successful (%s), total cost %s\n\n",
		r.Totals.Results, r.Totals.Successful, util.FormatPercent(r.Totals.SuccessRate), util.FormatCurrency(r.Totals.TotalCost))

	if len(r.Results) == 0 {
		fmt.Fprintln(out, "This evaluation has no results.")
		return
	}

	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		errText := "-"
		if !res.Succeeded() {
			errText = util.Truncate(res.Error, 30)
		}
		rows = append(rows, []string{
			res.ModelName,
			util.Truncate(res.TestCaseName, 30),
			res.Category,
			util.FormatPercent(res.AccuracyScore),
			util.FormatLatency(res.ResponseTimeMS),
			util.FormatCurrency(res.CostUSD),
			errText,
		})
	}
	renderTable(out, []string{"Model", "Test Case", "Category", "Accuracy", "Latency", "Cost", "Error"}, rows)

	fmt.Fprintln(out, headingText("By model"))
	statRows := make([][]string, 0, len(r.ModelStats))
	for _, s := range r.ModelStats {
		statRows = append(statRows, []string{
			s.Model,
			strconv.Itoa(s.Count),
			util.FormatPercent(s.MeanAccuracy),
			util.FormatLatency(s.MeanLatencyMS),
			util.FormatCurrency(s.TotalCost),
			util.FormatPercent(s.SuccessRate),
		})
	}
	renderTable(out, []string{"Model", "Results", "Mean Accuracy", "Mean Latency", "Total Cost", "Success Rate"}, statRows)

	if len(r.Metrics) > 0 {
		fmt.Fprintln(out, headingText("Rankings"))
		renderMetrics(out, r.Metrics)
	}
}
