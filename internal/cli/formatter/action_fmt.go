package formatter

import (
	"strings"

	"github.com/alexanderramin/pinely/internal/domain"
)

// FormatAction renders the next action for a thought.
func FormatAction(idea, action string, t domain.TimeChoice, e domain.EnergyChoice, fallback bool) string {
	var b strings.Builder
	b.WriteString(Dim("Thought: ") + Bold(idea) + "\n")
	if t != "" && e != "" {
		b.WriteString(Dim("Time: "+t.Label()+" · Energy: "+e.Label()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderBox("Your next step", StyleFg.Render(action)) + "\n")
	b.WriteString(SourceBadge(fallback) + "\n")
	return b.String()
}
