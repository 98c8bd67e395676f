package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// flowKeyMap holds the bindings of the full-screen flow.
type flowKeyMap struct {
	Submit  key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Random  key.Binding
	Back    key.Binding
	Restart key.Binding
	Retry   key.Binding
	Quit    key.Binding
}

func newFlowKeyMap() flowKeyMap {
	return flowKeyMap{
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "organize")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Random:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "surprise me")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
		Restart: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "start over")),
		Retry:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "another step")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders bindings as "key desc · key desc".
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
