package cli

import (
	"os/signal"
	"syscall"

	"github.com/alexanderramin/pinely/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	cfg := httpapi.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler := httpapi.NewRouter(cfg, httpapi.Deps{
				Organizer: app.Organizer,
				Actions:   app.Actions,
				Client:    app.Client,
				Logger:    app.logger(),
				Registry:  app.Registry,
				Metrics:   app.HTTPMetrics,
			})
			return httpapi.Serve(ctx, cfg, handler, app.logger())
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	cmd.Flags().StringSliceVar(&cfg.AllowedOrigins, "origin", cfg.AllowedOrigins, "Allowed CORS origins")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Per-request timeout")

	return cmd
}
