package evalboard

import "github.com/spf13/cobra"

// listCmd represents the 'list' command group for listing resources.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
	Long:  `The 'list' command groups subcommands that list models, test cases, categories and evaluations known to the evaluation service.`,
}

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display a single evaluation, its results and metrics, or the effective configuration.`,
}

// runCmd represents the 'run' command group for starting evaluations.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Group commands for starting evaluations",
	Long:  `The 'run' command groups subcommands that ask the evaluation service to start a run.`,
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, runCmd)
}
