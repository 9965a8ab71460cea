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

// parseEvaluationID validates a positional evaluation id.
func parseEvaluationID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid evaluation id %q", raw)
	}
	return id, nil
}

// showEvaluationCmd implements 'show evaluation <id>'.
var showEvaluationCmd = &cobra.Command{
	Use:   "evaluation <id>",
	Short: "Show one evaluation run",
	Long:  `The 'evaluation' subcommand prints the name, status and creation time of one evaluation run.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEvaluationID(args[0])
		if err != nil {
			return err
		}
		client := evalapi.NewFromConfig(config())
		eval, err := client.Evaluations.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), eval, func(out io.Writer) error {
			fmt.Fprintf(out, "%s #%d %s\n", headingText("Evaluation"), eval.ID, eval.Name)
			fmt.Fprintf(out, "  Status:      %s\n", statusBadge(eval.Status))
			created := util.FormatTimestamp(eval.CreatedAt)
			if t, ok := util.ParseTimestamp(eval.CreatedAt); ok {
				created += " (" + util.RelativeTime(t, time.Now()) + ")"
			}
			fmt.Fprintf(out, "  Created:     %s\n", created)
			if eval.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", eval.Description)
			}
			return nil
		})
	},
}

func init() {
	showCmd.AddCommand(showEvaluationCmd)
}
