package evalboard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/util"
	"github.com/spf13/cobra"
)

// showMetricsCmd implements 'show metrics <id>'. A run without metrics is not an error.
var showMetricsCmd = &cobra.Command{
	Use:   "metrics <id>",
	Short: "Show backend ranking metrics of an evaluation",
	Long:  `The 'metrics' subcommand prints the per-model, per-category rankings computed by the evaluation service.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEvaluationID(args[0])
		if err != nil {
			return err
		}
		client := evalapi.NewFromConfig(config())
		metrics, err := client.Evaluations.Metrics(cmd.Context(), id)
		if err != nil && !evalapi.IsNotFound(err) {
			return err
		}
		if metrics == nil {
			metrics = []evalapi.PerformanceMetric{}
		}
		return emit(cmd.OutOrStdout(), metrics, func(out io.Writer) error {
			if len(metrics) == 0 {
				fmt.Fprintf(out, "No metrics for evaluation %d.\n", id)
				return nil
			}
			renderMetrics(out, metrics)
			return nil
		})
	},
}

func init() {
	showCmd.AddCommand(showMetricsCmd)
}

func renderMetrics(out io.Writer, metrics []evalapi.PerformanceMetric) {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			m.ModelName,
			m.Category,
			strconv.Itoa(m.OverallRank),
			strconv.Itoa(m.AccuracyRank),
			strconv.Itoa(m.SpeedRank),
			strconv.Itoa(m.CostRank),
			util.FormatPercent(m.AvgAccuracy),
			util.FormatLatency(m.AvgResponseTime),
			util.FormatCurrency(m.TotalCost),
		})
	}
	renderTable(out, []string{"Model", "Category", "Overall", "Accuracy", "Speed", "Cost", "Avg Accuracy", "Avg Latency", "Total Cost"}, rows)
}
