package evalboard

import (
	"io"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/models"
	"github.com/spf13/cobra"
)

var listModelsFilter string

// listModelsCmd implements 'list models', which prints the model catalogue
// with provider, cost tier and context size labels.
var listModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models registered with the evaluation service",
	Long:  `The 'models' subcommand lists the models known to the evaluation service. Use --filter to show only active or inactive models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := evalapi.NewFromConfig(config())
		list, err := client.Models.List(cmd.Context())
		if err != nil {
			return err
		}
		filter := models.ParseFilter(listModelsFilter)
		return emit(cmd.OutOrStdout(), models.Apply(list, filter), func(out io.Writer) error {
			models.Render(out, list, filter)
			return nil
		})
	},
}

func init() {
	listCmd.AddCommand(listModelsCmd)
	listModelsCmd.Flags().StringVar(&listModelsFilter, "filter", string(models.FilterAll), "all, active or inactive")
}
