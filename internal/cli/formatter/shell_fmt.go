package formatter

import (
	"strings"
)

// FormatWelcome renders the banner shown above the dump screen.
func FormatWelcome() string {
	var b strings.Builder

	b.WriteString(StylePurple.Render("  pinely") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString(StyleDim.Render("  Empty your head. We'll sort it and find one small next step.") + "\n")

	return b.String()
}

// FormatCommandHints renders the "pinely <cmd>" cheat sheet printed by a
// bare non-interactive invocation.
func FormatCommandHints() string {
	hints := [][2]string{
		{"dump <text>", "Organize a brain dump into clusters"},
		{"clusters", "Show the current clusters"},
		{"pick <n>", "Choose a thought (or --random)"},
		{"focus", "Get one next action for the chosen thought"},
		{"status", "Where you are in the flow"},
		{"back", "Go back one step"},
		{"resume", "Return to kept clusters"},
		{"reset", "Start over"},
		{"export", "Print the saved session"},
		{"serve", "Run the HTTP API"},
	}
	var b strings.Builder
	b.WriteString(FormatWelcome())
	b.WriteString("\n")
	for _, h := range hints {
		b.WriteString("  " + StyleGreen.Render(padRight(h[0], 14)) + StyleDim.Render(h[1]) + "\n")
	}
	return b.String()
}

func padRight(s string, n int) string {
	if w := len([]rune(s)); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s + " "
}
