package evalboard

import (
	"fmt"
	"io"

	"github.com/mwiater/evalboard/internal/dashboard"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/spf13/cobra"
)

// runDemoCmd implements 'run demo', which starts the backend's quick demo evaluation.
var runDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Start a quick demo evaluation",
	Long:  `The 'demo' subcommand asks the evaluation service to run its quick demo evaluation across a few models and test cases.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := evalapi.NewFromConfig(config())
		demo, err := dashboard.TriggerDemo(cmd.Context(), client)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), demo, func(out io.Writer) error {
			fmt.Fprintf(out, "%s %s\n", statusBadge(demo.Status), demo.Message)
			if demo.Description != "" {
				fmt.Fprintln(out, mutedText(demo.Description))
			}
			return nil
		})
	},
}

var (
	runEvaluationName       string
	runEvaluationModels     []int
	runEvaluationTestCases  []int
	runEvaluationCategories []string
)

// runEvaluationCmd implements 'run evaluation', which starts a custom evaluation run.
var runEvaluationCmd = &cobra.Command{
	Use:   "evaluation",
	Short: "Start a custom evaluation run",
	Long:  `The 'evaluation' subcommand starts an evaluation of the given models. Limit the run with --test-cases or --categories; without either every test case is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := evalapi.EvaluationRequest{
			Name:        runEvaluationName,
			ModelIDs:    runEvaluationModels,
			TestCaseIDs: runEvaluationTestCases,
			Categories:  runEvaluationCategories,
		}
		client := evalapi.NewFromConfig(config())
		started, err := client.Evaluations.Create(cmd.Context(), req)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), started, func(out io.Writer) error {
			fmt.Fprintf(out, "Evaluation #%d %s\n", started.EvaluationID, statusBadge(started.Status))
			fmt.Fprintf(out, "  Models evaluated: %d\n", started.ModelsEvaluated)
			fmt.Fprintf(out, "  Test cases run:   %d\n", started.TestCasesRun)
			fmt.Fprintf(out, "  Total results:    %d\n", started.TotalResults)
			return nil
		})
	},
}

func init() {
	runCmd.AddCommand(runDemoCmd, runEvaluationCmd)
	runEvaluationCmd.Flags().StringVar(&runEvaluationName, "name", "", "name of the evaluation run")
	runEvaluationCmd.Flags().IntSliceVar(&runEvaluationModels, "models", nil, "comma-separated model ids")
	runEvaluationCmd.Flags().IntSliceVar(&runEvaluationTestCases, "test-cases", nil, "comma-separated test case ids")
	runEvaluationCmd.Flags().StringSliceVar(&runEvaluationCategories, "categories", nil, "comma-separated categories")
	_ = runEvaluationCmd.MarkFlagRequired("name")
	_ = runEvaluationCmd.MarkFlagRequired("models")
}
