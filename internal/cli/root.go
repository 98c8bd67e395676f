package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/pinely/internal/cli/formatter"
	"github.com/alexanderramin/pinely/internal/httpapi"
	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/alexanderramin/pinely/internal/llm"
	"github.com/alexanderramin/pinely/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Flow service.FlowService

	// Organizer and Actions back the stateless HTTP API.
	Organizer intelligence.OrganizeService
	Actions   intelligence.ActionService

	// Client is nil when no model is configured.
	Client      llm.LLMClient
	Logger      *slog.Logger
	Registry    *prometheus.Registry
	HTTPMetrics *httpapi.HTTPMetrics

	// Interactive is true when stdin is a terminal: prompts, spinners and
	// the full-screen flow are only used then.
	Interactive bool
}

func (app *App) logger() *slog.Logger {
	if app.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return app.Logger
}

// NewRootCmd creates the top-level "pinely" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pinely",
		Short:         "Turn a brain dump into one next step",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCommandHints())
				return nil
			}
			return runFlowTUI(cmd.Context(), app)
		},
	}

	root.AddCommand(
		newDumpCmd(app),
		newClustersCmd(app),
		newPickCmd(app),
		newFocusCmd(app),
		newStatusCmd(app),
		newBackCmd(app),
		newResumeCmd(app),
		newResetCmd(app),
		newExportCmd(app),
		newServeCmd(app),
	)

	return root
}

// Execute runs the root command and prints a styled error on failure.
func Execute(ctx context.Context, app *App) error {
	root := NewRootCmd(app)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), formatter.ErrorLine(userMessage(err)))
	}
	return err
}
