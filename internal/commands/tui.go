package evalboard

import (
	"github.com/mwiater/evalboard/internal/tui"
	"github.com/spf13/cobra"
)

// startTUI is swapped out in tests.
var startTUI = tui.Start

// tuiCmd implements 'tui', the interactive terminal dashboard.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal dashboard",
	Long:  `The 'tui' command opens the full-screen dashboard with Dashboard, Models, Test Cases and Results views. Logs go to the log file only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startTUI(cmd.Context(), config())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
