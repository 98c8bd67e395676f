package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/pinely/internal/cli/formatter"
	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/spf13/cobra"
)

func newPickCmd(app *App) *cobra.Command {
	var random bool

	cmd := &cobra.Command{
		Use:   "pick [n]",
		Short: "Choose one thought to focus on",
		Long: `Choose one thought to focus on, by the number shown in
'pinely clusters', at random with --random, or from a list when run
interactively without arguments.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				state domain.SessionState
				err   error
			)
			switch {
			case random:
				if len(args) > 0 {
					return errors.New("pass either a number or --random, not both")
				}
				state, err = app.Flow.PickRandom(ctx)
			case len(args) == 1:
				var idea string
				idea, err = ideaByNumber(app.Flow.Current(ctx), args[0])
				if err != nil {
					return err
				}
				state, err = app.Flow.Select(ctx, idea)
			case app.Interactive:
				current := app.Flow.Current(ctx)
				if len(current.AllIdeas()) == 0 {
					return fmt.Errorf("%w: there are no thoughts to pick from", domain.ErrInvalidInput)
				}
				var idea string
				if err = selectIdeaForm(current.Clusters, &idea).Run(); err != nil {
					return err
				}
				state, err = app.Flow.Select(ctx, idea)
			default:
				return errors.New("pass the thought's number or --random")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim("Focusing on: ")+formatter.Bold(state.Selected()))
			fmt.Fprintln(out, formatter.Dim("Next: pinely focus"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&random, "random", "r", false, "Let pinely choose for you")

	return cmd
}

// ideaByNumber resolves the 1-based number printed next to each thought.
func ideaByNumber(state domain.SessionState, arg string) (string, error) {
	ideas := state.AllIdeas()
	if len(ideas) == 0 {
		return "", fmt.Errorf("%w: there are no thoughts to pick from", domain.ErrInvalidInput)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(ideas) {
		return "", fmt.Errorf("%w: pick a number between 1 and %d", domain.ErrInvalidInput, len(ideas))
	}
	return ideas[n-1], nil
}
