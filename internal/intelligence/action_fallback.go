package intelligence

import (
	"strings"

	"github.com/alexanderramin/pinely/internal/domain"
)

const ideaPreviewRunes = 30

// fallbackActionTemplates are keyed by energy level. "%p" is replaced with
// a short preview of the thought.
var fallbackActionTemplates = map[domain.EnergyChoice][]string{
	domain.EnergyLow: {
		`Just open a blank page and write one sentence about "%p"`,
		`Spend 2 minutes thinking about what the very first step might be`,
		`Write down three words that come to mind about this`,
		`Set a timer for 2 minutes and jot down any thoughts about "%p"`,
	},
	domain.EnergyMedium: {
		`Sketch out a rough outline for "%p"`,
		`List three small pieces you could start with`,
		`Set a 10-minute timer and brainstorm freely`,
		`Write down what "done" would look like for this`,
	},
	domain.EnergyHigh: {
		`Draft the first rough version of "%p"`,
		`Block out 30 minutes to explore this idea deeply`,
		`Start with the part that excites you most about "%p"`,
		`Create a simple plan with 3-5 concrete steps`,
	},
}

// ideaPreview returns the first 30 runes of idea, with "..." appended only
// when something was cut.
func ideaPreview(idea string) string {
	r := []rune(idea)
	if len(r) <= ideaPreviewRunes {
		return idea
	}
	return string(r[:ideaPreviewRunes]) + "..."
}

// FallbackActionCandidates lists every action the fallback can return for
// the given thought and energy. Time does not influence the choice.
func FallbackActionCandidates(idea string, energy domain.EnergyChoice) []string {
	templates, ok := fallbackActionTemplates[energy]
	if !ok {
		templates = fallbackActionTemplates[domain.EnergyMedium]
	}
	preview := ideaPreview(idea)
	out := make([]string, len(templates))
	for i, tmpl := range templates {
		out[i] = strings.ReplaceAll(tmpl, "%p", preview)
	}
	return out
}

// FallbackAction picks one candidate uniformly at random.
func FallbackAction(idea string, energy domain.EnergyChoice, rng RandSource) string {
	if rng == nil {
		rng = DefaultRand()
	}
	candidates := FallbackActionCandidates(idea, energy)
	return candidates[rng.IntN(len(candidates))]
}
