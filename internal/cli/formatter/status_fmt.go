package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pinely/internal/domain"
)

// FormatStatus renders where the session is in the flow and what to do next.
func FormatStatus(state domain.SessionState) string {
	screen := state.Screen()

	var b strings.Builder
	b.WriteString(RenderSteps(screen.Step()) + "\n\n")

	switch screen {
	case domain.ScreenDump:
		if state.RawDump != "" {
			b.WriteString(Dim("Draft dump: ") + Truncate(strings.ReplaceAll(state.RawDump, "\n", " "), 60) + "\n")
		}
		if n := len(state.Clusters); n > 0 {
			b.WriteString(Dim(fmt.Sprintf("Kept: %d %s from your last dump (pinely resume)", n, plural(n, "cluster"))) + "\n")
		}
		b.WriteString(Dim("Next: pinely dump \"everything on your mind\"") + "\n")
	case domain.ScreenClusters:
		ideas := len(state.AllIdeas())
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(fmt.Sprintf("%d", len(state.Clusters))), Dim(plural(len(state.Clusters), "cluster")+" holding "+fmt.Sprintf("%d ", ideas)+plural(ideas, "thought"))))
		b.WriteString(Dim("Next: pinely pick <n>") + "\n")
	case domain.ScreenFocus:
		b.WriteString(Dim("Focus: ") + Bold(state.Selected()) + "\n")
		if state.NextAction != nil {
			b.WriteString(Dim("Next step: ") + StyleGreen.Render(state.Action()) + "\n")
		} else {
			b.WriteString(Dim("Next: pinely focus") + "\n")
		}
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
