package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pinely/internal/cli/formatter"
	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/alexanderramin/pinely/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

type organizedMsg struct {
	out *service.OrganizeOutcome
	err error
}

type actionMsg struct {
	out *service.ActionOutcome
	err error
}

// draftTickMsg fires draftSaveDelay after a keystroke; only the latest
// sequence number triggers a save.
type draftTickMsg struct{ seq int }

type draftSavedMsg struct{ err error }

// draftSaveDelay debounces draft saves while typing.
const draftSaveDelay = 500 * time.Millisecond

// stateMsg carries the session after a quick transition (select, back, reset).
type stateMsg struct {
	state domain.SessionState
	err   error
}

// ── model ────────────────────────────────────────────────────────────────────

// flowModel is the full-screen dump → clusters → focus flow.
type flowModel struct {
	ctx  context.Context
	app  *App
	keys flowKeyMap

	input   textarea.Model
	spinner spinner.Model
	width   int

	state    domain.SessionState
	focus    *domain.FocusFlow
	cursor   int  // index into state.AllIdeas() or the current choice list
	fallback bool // last result came from the offline heuristic
	sourced  bool // fallback is known for the clusters on screen

	// loading is set while a model request is outstanding; submissions are
	// ignored until it clears.
	loading  bool
	errMsg   string
	quitting bool

	draftSeq int
}

func newFlowModel(ctx context.Context, app *App) flowModel {
	ta := textarea.New()
	ta.Placeholder = "Tasks, worries, ideas, half-thoughts..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 100000
	ta.SetHeight(8)
	ta.SetWidth(72)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	m := flowModel{
		ctx:     ctx,
		app:     app,
		keys:    newFlowKeyMap(),
		input:   ta,
		spinner: sp,
	}
	m = m.withState(app.Flow.Current(ctx))
	return m
}

// withState adopts a new session and resets the per-screen cursor state.
func (m flowModel) withState(state domain.SessionState) flowModel {
	m.state = state
	m.cursor = 0
	m.focus = nil

	switch state.Screen() {
	case domain.ScreenDump:
		m.input.SetValue(state.RawDump)
		m.input.Focus()
	case domain.ScreenClusters:
		m.input.Blur()
	case domain.ScreenFocus:
		m.input.Blur()
		m.focus = domain.NewFocusFlow(state.Selected())
		if state.NextAction != nil {
			m.focus.Step = domain.FocusAwaitingAction
		}
	}
	return m
}

func runFlowTUI(ctx context.Context, app *App) error {
	p := tea.NewProgram(newFlowModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m flowModel) Init() tea.Cmd {
	if m.state.Screen() == domain.ScreenDump {
		return textarea.Blink
	}
	return nil
}

func (m flowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(min(msg.Width-4, 80))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case organizedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m = m.withState(msg.out.State)
		m.fallback, m.sourced = msg.out.Result.Fallback, true
		return m, nil

	case actionMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			if m.focus != nil {
				m.focus.Reset()
			}
			return m, nil
		}
		m.errMsg = ""
		m.state = msg.out.State
		m.fallback = msg.out.Result.Fallback
		return m, nil

	case draftTickMsg:
		if msg.seq != m.draftSeq || m.loading || m.state.Screen() != domain.ScreenDump {
			return m, nil
		}
		return m, m.saveDraftCmd(m.input.Value())

	case draftSavedMsg:
		if msg.err != nil {
			m.errMsg = "Couldn't save your draft: " + msg.err.Error()
		}
		return m, nil

	case stateMsg:
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.sourced = false
		m = m.withState(msg.state)
		if m.state.Screen() == domain.ScreenDump {
			return m, textarea.Blink
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.state.Screen() == domain.ScreenDump {
				m.saveDraftNow()
			}
			m.quitting = true
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		switch m.state.Screen() {
		case domain.ScreenDump:
			return m.updateDump(msg)
		case domain.ScreenClusters:
			return m.updateClusters(msg)
		default:
			return m.updateFocus(msg)
		}
	}

	if m.state.Screen() == domain.ScreenDump {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m flowModel) updateDump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		raw := m.input.Value()
		if err := intelligence.ValidateDump(raw); err != nil {
			m.errMsg = fmt.Sprintf("Write a little more first (at least %d characters).", intelligence.MinDumpRunes)
			return m, m.saveDraftCmd(raw)
		}
		m.errMsg = ""
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.organizeCmd(raw))
	}

	// Esc returns to clusters kept from before stepping back.
	if msg.Type == tea.KeyEsc && len(m.state.Clusters) > 0 {
		raw, flow := m.input.Value(), m.app.Flow
		return m, m.transitionCmd(func(ctx context.Context) (domain.SessionState, error) {
			if _, err := flow.SaveDraft(ctx, raw); err != nil {
				return domain.SessionState{}, err
			}
			return flow.ResumeClusters(ctx)
		})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.draftSeq++
	seq := m.draftSeq
	return m, tea.Batch(cmd, tea.Tick(draftSaveDelay, func(time.Time) tea.Msg {
		return draftTickMsg{seq: seq}
	}))
}

// saveDraftNow writes the textarea synchronously; used on quit, when no
// further messages will be processed.
func (m flowModel) saveDraftNow() {
	if _, err := m.app.Flow.SaveDraft(m.ctx, m.input.Value()); err != nil {
		m.app.logger().Warn("draft_save_failed", "error", err)
	}
}

func (m flowModel) updateClusters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ideas := m.state.AllIdeas()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(ideas)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(ideas) {
			idea := ideas[m.cursor]
			return m, m.transitionCmd(func(ctx context.Context) (domain.SessionState, error) {
				return m.app.Flow.Select(ctx, idea)
			})
		}
	case key.Matches(msg, m.keys.Random):
		return m, m.transitionCmd(m.app.Flow.PickRandom)
	case key.Matches(msg, m.keys.Back):
		return m, m.transitionCmd(m.app.Flow.Back)
	case key.Matches(msg, m.keys.Restart):
		return m, m.resetCmd()
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m flowModel) updateFocus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		return m, m.resetCmd()
	}

	switch m.focus.Step {
	case domain.FocusAwaitingTime:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, len(domain.TimeChoices)-1)
		case key.Matches(msg, m.keys.Select):
			if err := m.focus.ChooseTime(domain.TimeChoices[m.cursor]); err != nil {
				m.errMsg = userMessage(err)
				return m, nil
			}
			m.cursor = 0
		case key.Matches(msg, m.keys.Back):
			return m, m.transitionCmd(m.app.Flow.Back)
		}

	case domain.FocusAwaitingEnergy:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, len(domain.EnergyChoices)-1)
		case key.Matches(msg, m.keys.Select):
			req, err := m.focus.ChooseEnergy(domain.EnergyChoices[m.cursor])
			if err != nil {
				m.errMsg = userMessage(err)
				return m, nil
			}
			m.cursor = 0
			return m.startAction(req)
		case key.Matches(msg, m.keys.Back):
			m.focus.Reset()
			m.cursor = 0
		}

	case domain.FocusAwaitingAction:
		switch {
		case key.Matches(msg, m.keys.Retry):
			// A resumed session has no answers to replay; ask again.
			if m.focus.Time == "" || m.focus.Energy == "" {
				m.focus.Reset()
				m.cursor = 0
				return m, nil
			}
			return m.startAction(domain.FocusRequest{Idea: m.focus.Idea, Time: m.focus.Time, Energy: m.focus.Energy})
		case key.Matches(msg, m.keys.Back):
			return m, m.transitionCmd(m.app.Flow.Back)
		}
	}
	return m, nil
}

func (m flowModel) startAction(req domain.FocusRequest) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.actionCmd(req))
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m flowModel) organizeCmd(raw string) tea.Cmd {
	flow, ctx := m.app.Flow, m.ctx
	return func() tea.Msg {
		out, err := flow.Organize(ctx, raw)
		return organizedMsg{out: out, err: err}
	}
}

func (m flowModel) actionCmd(req domain.FocusRequest) tea.Cmd {
	flow, ctx := m.app.Flow, m.ctx
	return func() tea.Msg {
		out, err := flow.GenerateAction(ctx, req.Time, req.Energy)
		return actionMsg{out: out, err: err}
	}
}

func (m flowModel) saveDraftCmd(raw string) tea.Cmd {
	flow, ctx := m.app.Flow, m.ctx
	return func() tea.Msg {
		_, err := flow.SaveDraft(ctx, raw)
		return draftSavedMsg{err: err}
	}
}

func (m flowModel) transitionCmd(fn func(context.Context) (domain.SessionState, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		state, err := fn(ctx)
		return stateMsg{state: state, err: err}
	}
}

func (m flowModel) resetCmd() tea.Cmd {
	flow, ctx := m.app.Flow, m.ctx
	return func() tea.Msg {
		if err := flow.Reset(ctx); err != nil {
			return stateMsg{err: err}
		}
		return stateMsg{state: domain.NewSessionState()}
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m flowModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.StylePurple.Render("pinely") + "  " + formatter.RenderSteps(m.state.Screen().Step()) + "\n\n")

	switch m.state.Screen() {
	case domain.ScreenDump:
		b.WriteString(m.viewDump())
	case domain.ScreenClusters:
		b.WriteString(m.viewClusters())
	default:
		b.WriteString(m.viewFocus())
	}

	if m.errMsg != "" {
		b.WriteString("\n" + formatter.ErrorLine(m.errMsg) + "\n")
	}
	return b.String()
}

func (m flowModel) viewLoading(label string) string {
	return m.spinner.View() + " " + formatter.Dim(label) + "\n"
}

func (m flowModel) viewDump() string {
	var b strings.Builder
	b.WriteString(formatter.Bold("What's on your mind?") + "\n")
	b.WriteString(formatter.Dim("Everything. We'll sort it.") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	if m.loading {
		b.WriteString(m.viewLoading("Sorting your thoughts..."))
	} else if len(m.state.Clusters) > 0 {
		b.WriteString(formatter.Dim(helpLine(m.keys.Submit)+" · esc back to your clusters · ctrl+c quit") + "\n")
	} else {
		b.WriteString(formatter.Dim(helpLine(m.keys.Submit)+" · ctrl+c quit") + "\n")
	}
	return b.String()
}

func (m flowModel) viewClusters() string {
	var b strings.Builder
	b.WriteString(formatter.Bold("Here's what you're carrying.") + " " + formatter.Dim("Pick one thought to move forward.") + "\n\n")

	n := 0
	for i, c := range m.state.Clusters {
		b.WriteString(formatter.ClusterStyle(i).Bold(true).Render(c.Title) + "\n")
		for _, idea := range c.Ideas {
			if n == m.cursor {
				b.WriteString("  " + formatter.StyleGreen.Render("▸ "+idea) + "\n")
			} else {
				b.WriteString("    " + formatter.StyleFg.Render(idea) + "\n")
			}
			n++
		}
		b.WriteString("\n")
	}

	if m.sourced {
		b.WriteString(formatter.SourceBadge(m.fallback) + "\n")
	}
	b.WriteString(formatter.Dim(helpLine(m.keys.Select, m.keys.Random, m.keys.Back, m.keys.Restart, m.keys.Quit)) + "\n")
	return b.String()
}

func (m flowModel) viewFocus() string {
	var b strings.Builder
	b.WriteString(formatter.Dim("Focusing on: ") + formatter.Bold(m.state.Selected()) + "\n\n")

	if m.loading {
		b.WriteString(m.viewLoading("Finding a next step..."))
		return b.String()
	}

	switch m.focus.Step {
	case domain.FocusAwaitingTime:
		labels := make([]string, len(domain.TimeChoices))
		for i, t := range domain.TimeChoices {
			labels[i] = t.Label()
		}
		b.WriteString(m.viewChoices("How much time do you have?", labels))
		b.WriteString(formatter.Dim(helpLine(m.keys.Select, m.keys.Back, m.keys.Restart)) + "\n")
	case domain.FocusAwaitingEnergy:
		labels := make([]string, len(domain.EnergyChoices))
		for i, e := range domain.EnergyChoices {
			labels[i] = e.Label()
		}
		b.WriteString(m.viewChoices("How's your energy?", labels))
		b.WriteString(formatter.Dim(helpLine(m.keys.Select, m.keys.Back, m.keys.Restart)) + "\n")
	default:
		b.WriteString(formatter.RenderBox("Your next step", formatter.StyleFg.Render(m.state.Action())) + "\n")
		if m.focus.Energy != "" {
			b.WriteString(formatter.SourceBadge(m.fallback) + "\n")
		}
		b.WriteString(formatter.Dim(helpLine(m.keys.Retry, m.keys.Back, m.keys.Restart, m.keys.Quit)) + "\n")
	}
	return b.String()
}

func (m flowModel) viewChoices(title string, labels []string) string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(title) + "\n")
	for i, l := range labels {
		if i == m.cursor {
			b.WriteString("  " + formatter.StyleGreen.Render("▸ "+l) + "\n")
		} else {
			b.WriteString("    " + formatter.StyleFg.Render(l) + "\n")
		}
	}
	return b.String() + "\n"
}
