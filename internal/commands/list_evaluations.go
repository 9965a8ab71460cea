package evalboard

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/util"
	"github.com/spf13/cobra"
)

var listEvaluationsLimit int

// listEvaluationsCmd implements 'list evaluations', newest first.
var listEvaluationsCmd = &cobra.Command{
	Use:   "evaluations",
	Short: "List evaluation runs, newest first",
	Long:  `The 'evaluations' subcommand lists evaluation runs ordered by creation time, newest first. --limit caps the number shown (0 = all).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := evalapi.NewFromConfig(config())
		list, err := client.Evaluations.List(cmd.Context())
		if err != nil {
			return err
		}
		sorted := evalapi.NewestFirst(list)
		if listEvaluationsLimit > 0 && len(sorted) > listEvaluationsLimit {
			sorted = sorted[:listEvaluationsLimit]
		}
		return emit(cmd.OutOrStdout(), sorted, func(out io.Writer) error {
			renderEvaluations(out, sorted, time.Now())
			return nil
		})
	},
}

func init() {
	listCmd.AddCommand(listEvaluationsCmd)
	listEvaluationsCmd.Flags().IntVar(&listEvaluationsLimit, "limit", 0, "maximum number of evaluations to show (0 = all)")
}

// renderEvaluations prints one line per evaluation with a coloured status.
func renderEvaluations(out io.Writer, evals []evalapi.Evaluation, now time.Time) {
	if len(evals) == 0 {
		fmt.Fprintln(out, "No evaluations yet.")
		return
	}
	rows := make([][]string, 0, len(evals))
	for _, e := range evals {
		when := util.FormatTimestamp(e.CreatedAt)
		if t, ok := util.ParseTimestamp(e.CreatedAt); ok {
			when += " (" + util.RelativeTime(t, now) + ")"
		}
		rows = append(rows, []string{"#" + strconv.Itoa(e.ID), util.Truncate(e.Name, 40), statusBadge(e.Status), when})
	}
	renderTable(out, []string{"ID", "Name", "Status", "Created"}, rows)
}
