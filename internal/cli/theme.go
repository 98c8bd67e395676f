package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/pinely/internal/cli/formatter"
	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pinelyHuhTheme returns a huh theme using the formatter palette.
func pinelyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themedForm(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(pinelyHuhTheme()).
		WithShowHelp(false)
}

// validateDump mirrors the organize precondition so the form can reject
// short dumps before a request is made.
func validateDump(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) < intelligence.MinDumpRunes {
		return fmt.Errorf("write at least %d characters", intelligence.MinDumpRunes)
	}
	return nil
}

// dumpForm asks for the brain dump in a multi-line text field.
func dumpForm(value *string) *huh.Form {
	return themedForm(
		huh.NewText().
			Title("What's on your mind?").
			Description("Everything. Tasks, worries, ideas. We'll sort it.").
			Lines(8).
			Value(value).
			Validate(validateDump),
	)
}

// ideaOptions lists every thought, labelled with its cluster title.
func ideaOptions(clusters []domain.Cluster) []huh.Option[string] {
	var options []huh.Option[string]
	for _, c := range clusters {
		for _, idea := range c.Ideas {
			options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", idea, formatter.Dim("· "+c.Title)), idea))
		}
	}
	return options
}

func selectIdeaForm(clusters []domain.Cluster, value *string) *huh.Form {
	return themedForm(
		huh.NewSelect[string]().
			Title("Which thought do you want to move forward?").
			Options(ideaOptions(clusters)...).
			Value(value),
	)
}

func timeOptions() []huh.Option[domain.TimeChoice] {
	options := make([]huh.Option[domain.TimeChoice], 0, len(domain.TimeChoices))
	for _, t := range domain.TimeChoices {
		options = append(options, huh.NewOption(t.Label(), t))
	}
	return options
}

func energyOptions() []huh.Option[domain.EnergyChoice] {
	options := make([]huh.Option[domain.EnergyChoice], 0, len(domain.EnergyChoices))
	for _, e := range domain.EnergyChoices {
		options = append(options, huh.NewOption(e.Label(), e))
	}
	return options
}

func timeForm(idea string, value *domain.TimeChoice) *huh.Form {
	return themedForm(
		huh.NewSelect[domain.TimeChoice]().
			Title("How much time do you have?").
			Description(idea).
			Options(timeOptions()...).
			Value(value),
	)
}

func energyForm(value *domain.EnergyChoice) *huh.Form {
	return themedForm(
		huh.NewSelect[domain.EnergyChoice]().
			Title("How's your energy?").
			Options(energyOptions()...).
			Value(value),
	)
}
