package evalboard

import (
	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if JSONModeEnabled() {
			return printJSON(cmd.OutOrStdout(), config())
		}
		fallback := appconfig.Default()
		fallback.APIBaseURL = viper.GetString("apiBaseURL")
		fallback.Debug = viper.GetBool("debug")
		fallback.JSONMode = viper.GetBool("jsonMode")
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig(), fallback)
		return nil
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
