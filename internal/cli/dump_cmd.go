package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/pinely/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDumpCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "dump [text...]",
		Short: "Organize a brain dump into clusters",
		Long: `Organize a brain dump into themed clusters.

The dump is taken from the arguments, from --file, or from stdin when the
only argument is "-" (or when nothing is given and stdin is not a terminal).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDump(cmd, app, file, args)
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Sorting your thoughts...", app.Interactive)
			out, err := app.Flow.Organize(cmd.Context(), raw)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOrganized(out.State.Clusters, out.Result.Fallback))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the dump from a file")

	return cmd
}

func readDump(cmd *cobra.Command, app *App, file string, args []string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading dump file: %w", err)
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		return readAll(cmd.InOrStdin())
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case app.Interactive:
		var raw string
		if err := dumpForm(&raw).Run(); err != nil {
			return "", err
		}
		return raw, nil
	default:
		return readAll(cmd.InOrStdin())
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
