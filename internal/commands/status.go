package evalboard

import (
	"fmt"
	"io"
	"time"

	"github.com/mwiater/evalboard/internal/dashboard"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/spf13/cobra"
)

// statusCmd implements 'status', a one-shot dashboard snapshot.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a one-shot dashboard snapshot",
	Long:  `The 'status' command fetches models, test cases, categories and evaluations in parallel and prints the dashboard counts and the most recent evaluations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		client := evalapi.NewFromConfig(cfg)
		snap := dashboard.Load(cmd.Context(), client)
		counts := snap.Counts()
		recent := snap.Recent(cfg.RecentCount())

		view := struct {
			Counts dashboard.Counts     `json:"counts"`
			Recent []evalapi.Evaluation `json:"recent"`
		}{Counts: counts, Recent: recent}

		err := emit(cmd.OutOrStdout(), view, func(out io.Writer) error {
			fmt.Fprintf(out, "%s %s\n\n", headingText("Evaluation service:"), client.BaseURL())
			fmt.Fprintf(out, "  Models:       %d (%d active)\n", counts.Models, counts.ActiveModels)
			fmt.Fprintf(out, "  Test cases:   %d\n", counts.TestCases)
			fmt.Fprintf(out, "  Categories:   %d\n", counts.Categories)
			fmt.Fprintf(out, "  Evaluations:  %d\n", counts.Evaluations)
			for _, status := range []string{evalapi.StatusRunning, evalapi.StatusCompleted, evalapi.StatusFailed, evalapi.StatusPending} {
				fmt.Fprintf(out, "    %-22s %d\n", statusBadge(status), counts.ByStatus[status])
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, headingText("Recent evaluations"))
			renderEvaluations(out, recent, time.Now())
			return nil
		})
		if err != nil {
			return err
		}
		return snap.Err()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
