package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pinely/internal/cli/formatter"
	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// timeValue adapts domain.TimeChoice to a pflag.Value so aliases like
// "5min" are accepted and bad values fail at parse time.
type timeValue struct{ v *domain.TimeChoice }

var _ pflag.Value = (*timeValue)(nil)

func (t *timeValue) String() string { return string(*t.v) }
func (t *timeValue) Type() string   { return "time" }

func (t *timeValue) Set(s string) error {
	c, err := domain.ParseTimeChoice(s)
	if err != nil {
		return err
	}
	*t.v = c
	return nil
}

type energyValue struct{ v *domain.EnergyChoice }

var _ pflag.Value = (*energyValue)(nil)

func (e *energyValue) String() string { return string(*e.v) }
func (e *energyValue) Type() string   { return "energy" }

func (e *energyValue) Set(s string) error {
	c, err := domain.ParseEnergyChoice(s)
	if err != nil {
		return err
	}
	*e.v = c
	return nil
}

func newFocusCmd(app *App) *cobra.Command {
	var (
		t domain.TimeChoice
		e domain.EnergyChoice
	)

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Get one next action for the chosen thought",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			state := app.Flow.Current(ctx)
			if state.SelectedIdea == nil {
				return fmt.Errorf("%w: pick a thought first with 'pinely pick'", domain.ErrInvalidTransition)
			}

			req, err := askFocus(app, domain.NewFocusFlow(state.Selected()), t, e)
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Finding a next step...", app.Interactive)
			out, err := app.Flow.GenerateAction(ctx, req.Time, req.Energy)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAction(out.State.Selected(), out.Result.Action, req.Time, req.Energy, out.Result.Fallback))
			return nil
		},
	}

	cmd.Flags().Var(&timeValue{&t}, "time", "Time available: short, medium or open")
	cmd.Flags().Var(&energyValue{&e}, "energy", "Energy level: low, medium or high")

	return cmd
}

// askFocus walks the focus flow, taking answers from flags and prompting
// for whatever is missing when the terminal is interactive.
func askFocus(app *App, flow *domain.FocusFlow, t domain.TimeChoice, e domain.EnergyChoice) (domain.FocusRequest, error) {
	if t == "" || e == "" {
		if !app.Interactive {
			return domain.FocusRequest{}, errors.New("--time and --energy are required when not running in a terminal")
		}
	}

	if t == "" {
		if err := timeForm(flow.Idea, &t).Run(); err != nil {
			return domain.FocusRequest{}, err
		}
	}
	if err := flow.ChooseTime(t); err != nil {
		return domain.FocusRequest{}, err
	}

	if e == "" {
		if err := energyForm(&e).Run(); err != nil {
			return domain.FocusRequest{}, err
		}
	}
	return flow.ChooseEnergy(e)
}
