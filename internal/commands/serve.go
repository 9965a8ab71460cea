package evalboard

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveListen string
	serveWeb    = runWebServer
)

// serveCmd implements 'serve', the browser dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long:  `The 'serve' command serves the Dashboard, Models, Test Cases and Results pages as HTML. --listen overrides listenAddr from the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		if serveListen != "" {
			cfg.ListenAddr = serveListen
		}
		return serveWeb(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (default from config, :8080)")
}

// runWebServer serves the web dashboard until interrupted.
func runWebServer(ctx context.Context, cfg appconfig.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return web.New(cfg, evalapi.NewFromConfig(cfg)).ListenAndServe(ctx)
}
