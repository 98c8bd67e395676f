package service

import (
	"context"

	"github.com/alexanderramin/pinely/internal/domain"
)

// FlowService runs one step of the dump → clusters → focus flow: it loads
// the saved session, applies a transition and saves the result.
type FlowService interface {
	Current(ctx context.Context) domain.SessionState
	Organize(ctx context.Context, rawDump string) (*OrganizeOutcome, error)
	SaveDraft(ctx context.Context, rawDump string) (domain.SessionState, error)
	ResumeClusters(ctx context.Context) (domain.SessionState, error)
	Select(ctx context.Context, idea string) (domain.SessionState, error)
	PickRandom(ctx context.Context) (domain.SessionState, error)
	GenerateAction(ctx context.Context, t domain.TimeChoice, e domain.EnergyChoice) (*ActionOutcome, error)
	Back(ctx context.Context) (domain.SessionState, error)
	Reset(ctx context.Context) error
}
