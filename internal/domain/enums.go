package domain

import (
	"fmt"
	"strings"
)

type TimeChoice string

const (
	TimeShort  TimeChoice = "short"
	TimeMedium TimeChoice = "medium"
	TimeOpen   TimeChoice = "open"
)

// TimeChoices lists the time budgets in the order they are offered.
var TimeChoices = []TimeChoice{TimeShort, TimeMedium, TimeOpen}

// Descriptor returns the phrase used for the time budget in model prompts.
func (t TimeChoice) Descriptor() string {
	switch t {
	case TimeShort:
		return "just a few minutes"
	case TimeMedium:
		return "about half an hour"
	default:
		return "as long as it takes"
	}
}

// Label returns the short label shown to the user.
func (t TimeChoice) Label() string {
	switch t {
	case TimeShort:
		return "A few minutes"
	case TimeMedium:
		return "About 30 minutes"
	default:
		return "As long as it takes"
	}
}

func (t TimeChoice) Valid() bool {
	return t == TimeShort || t == TimeMedium || t == TimeOpen
}

// ParseTimeChoice accepts the canonical names as well as the "5min"/"30min"
// spellings used by the web client.
func ParseTimeChoice(s string) (TimeChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short", "5min", "few":
		return TimeShort, nil
	case "medium", "30min", "half":
		return TimeMedium, nil
	case "open", "any", "unbounded":
		return TimeOpen, nil
	}
	return "", fmt.Errorf("%w: unknown time choice %q (want short, medium or open)", ErrInvalidInput, s)
}

type EnergyChoice string

const (
	EnergyLow    EnergyChoice = "low"
	EnergyMedium EnergyChoice = "medium"
	EnergyHigh   EnergyChoice = "high"
)

// EnergyChoices lists the energy levels in the order they are offered.
var EnergyChoices = []EnergyChoice{EnergyLow, EnergyMedium, EnergyHigh}

// Descriptor returns the phrase used for the energy level in model prompts.
func (e EnergyChoice) Descriptor() string {
	switch e {
	case EnergyLow:
		return "low energy, feeling tired"
	case EnergyHigh:
		return "energized and ready to dive in"
	default:
		return "somewhere in between"
	}
}

// Label returns the short label shown to the user.
func (e EnergyChoice) Label() string {
	switch e {
	case EnergyLow:
		return "Tired"
	case EnergyHigh:
		return "Focused"
	default:
		return "In between"
	}
}

func (e EnergyChoice) Valid() bool {
	return e == EnergyLow || e == EnergyMedium || e == EnergyHigh
}

// ParseEnergyChoice accepts the canonical names as well as the
// "tired"/"neutral"/"focused" mood names used by the web client.
func ParseEnergyChoice(s string) (EnergyChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "tired":
		return EnergyLow, nil
	case "medium", "neutral":
		return EnergyMedium, nil
	case "high", "focused":
		return EnergyHigh, nil
	}
	return "", fmt.Errorf("%w: unknown energy choice %q (want low, medium or high)", ErrInvalidInput, s)
}

// Screen is the top-level step of the flow derived from session state.
type Screen string

const (
	ScreenDump     Screen = "dump"
	ScreenClusters Screen = "clusters"
	ScreenFocus    Screen = "focus"
)

// Step returns the 1-based progress step for the screen.
func (s Screen) Step() int {
	switch s {
	case ScreenClusters:
		return 2
	case ScreenFocus:
		return 3
	default:
		return 1
	}
}

type FocusStep string

const (
	FocusAwaitingTime   FocusStep = "awaiting_time"
	FocusAwaitingEnergy FocusStep = "awaiting_energy"
	FocusAwaitingAction FocusStep = "awaiting_action"
)
