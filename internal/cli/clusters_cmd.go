package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/pinely/internal/cli/formatter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newClustersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Show the current clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Flow.Current(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClusters(state.Clusters, state.Selected()))
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where you are in the flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(app.Flow.Current(cmd.Context())))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Flow.Current(cmd.Context())

			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = json.MarshalIndent(state, "", "  ")
				data = append(data, '\n')
			case "yaml", "yml":
				data, err = yaml.Marshal(state)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("encoding session: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")

	return cmd
}
