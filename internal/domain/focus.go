package domain

import "fmt"

// FocusRequest is the (thought, time, energy) triple handed to the
// next-action service once both questions are answered.
type FocusRequest struct {
	Idea   string
	Time   TimeChoice
	Energy EnergyChoice
}

// FocusFlow drives which question is asked on the focus screen:
// time first, then energy, after which the action is requested.
type FocusFlow struct {
	Idea   string
	Step   FocusStep
	Time   TimeChoice
	Energy EnergyChoice
}

// NewFocusFlow starts a flow for the given thought.
func NewFocusFlow(idea string) *FocusFlow {
	return &FocusFlow{Idea: idea, Step: FocusAwaitingTime}
}

// ChooseTime records the time budget and moves on to the energy question.
func (f *FocusFlow) ChooseTime(t TimeChoice) error {
	if f.Step != FocusAwaitingTime {
		return fmt.Errorf("%w: time chosen while %s", ErrInvalidTransition, f.Step)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: unknown time choice %q", ErrInvalidInput, t)
	}
	f.Time = t
	f.Step = FocusAwaitingEnergy
	return nil
}

// ChooseEnergy records the energy level and returns the request that the
// caller must send immediately.
func (f *FocusFlow) ChooseEnergy(e EnergyChoice) (FocusRequest, error) {
	if f.Step != FocusAwaitingEnergy {
		return FocusRequest{}, fmt.Errorf("%w: energy chosen while %s", ErrInvalidTransition, f.Step)
	}
	if !e.Valid() {
		return FocusRequest{}, fmt.Errorf("%w: unknown energy choice %q", ErrInvalidInput, e)
	}
	f.Energy = e
	f.Step = FocusAwaitingAction
	return FocusRequest{Idea: f.Idea, Time: f.Time, Energy: f.Energy}, nil
}

// Reset returns to the first question, keeping the thought.
func (f *FocusFlow) Reset() {
	f.Step = FocusAwaitingTime
	f.Time = ""
	f.Energy = ""
}
