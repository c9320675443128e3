package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/khallinan12345/community-research-assistant/internal/config"
	"github.com/khallinan12345/community-research-assistant/internal/server"
)

// newServeCmd creates the "serve" subcommand exposing the interview services
// over the HTTP JSON API.
func newServeCmd(app *App) *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if configPath != "" {
				loaded, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}

			srv := server.New(cfg, server.Deps{
				State:     app.State,
				Interview: app.Interview,
				Research:  app.Research,
				Assets:    app.Assets,
				Report:    app.Report,
				Fetcher:   app.Fetcher,
				Logger:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
			})
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")

	return cmd
}
