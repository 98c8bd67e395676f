package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/alexanderramin/pinely/internal/session"
)

// OrganizeOutcome is the session after organizing plus the raw result.
type OrganizeOutcome struct {
	State  domain.SessionState
	Result *intelligence.OrganizeResult
}

// ActionOutcome is the session after generating an action plus the raw result.
type ActionOutcome struct {
	State  domain.SessionState
	Result *intelligence.ActionResult
}

type flowService struct {
	mu        sync.Mutex
	storage   session.Storage
	organizer intelligence.OrganizeService
	actions   intelligence.ActionService
	rng       intelligence.RandSource
	observer  UseCaseObserver
}

// NewFlowService wires the two intelligence services to a session store.
// rng may be nil to use the process-wide source.
func NewFlowService(
	storage session.Storage,
	organizer intelligence.OrganizeService,
	actions intelligence.ActionService,
	rng intelligence.RandSource,
	observers ...UseCaseObserver,
) FlowService {
	if rng == nil {
		rng = intelligence.DefaultRand()
	}
	return &flowService{
		storage:   storage,
		organizer: organizer,
		actions:   actions,
		rng:       rng,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *flowService) Current(ctx context.Context) domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *flowService) Organize(ctx context.Context, rawDump string) (out *OrganizeOutcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]any{"dump_len": len([]rune(rawDump))}
	defer s.observe(ctx, "organize", time.Now(), fields, &err)

	result, err := s.organizer.Organize(ctx, rawDump)
	if err != nil {
		return nil, err
	}
	fields["clusters"] = len(result.Clusters)
	fields["source"] = result.Source()

	state := s.load(ctx).WithRawDump(rawDump).WithClusters(result.Clusters)
	if err = s.save(ctx, state); err != nil {
		return nil, err
	}
	return &OrganizeOutcome{State: state, Result: result}, nil
}

// SaveDraft records the dump text as typed, without organizing it. Clusters
// and selection are left alone.
func (s *flowService) SaveDraft(ctx context.Context, rawDump string) (state domain.SessionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state = s.load(ctx)
	if state.RawDump == rawDump {
		return state, nil
	}
	state = state.WithRawDump(rawDump)
	return state, s.save(ctx, state)
}

func (s *flowService) ResumeClusters(ctx context.Context) (state domain.SessionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(ctx, "resume-clusters", time.Now(), nil, &err)

	state = s.load(ctx)
	if len(state.Clusters) == 0 {
		return state, fmt.Errorf("%w: there are no clusters to return to", domain.ErrInvalidInput)
	}
	state = state.ResumeClusters()
	if err = s.save(ctx, state); err != nil {
		return state, err
	}
	return state, nil
}

func (s *flowService) Select(ctx context.Context, idea string) (state domain.SessionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(ctx, "select", time.Now(), nil, &err)

	state = s.load(ctx)
	if !state.HasIdea(idea) {
		return state, fmt.Errorf("%w: %q is not one of the current thoughts", domain.ErrInvalidInput, idea)
	}
	state = state.SelectIdea(idea)
	if err = s.save(ctx, state); err != nil {
		return state, err
	}
	return state, nil
}

func (s *flowService) PickRandom(ctx context.Context) (state domain.SessionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(ctx, "pick-random", time.Now(), nil, &err)

	state = s.load(ctx)
	ideas := state.AllIdeas()
	if len(ideas) == 0 {
		return state, fmt.Errorf("%w: there are no thoughts to pick from", domain.ErrInvalidInput)
	}
	state = state.SelectIdea(ideas[s.rng.IntN(len(ideas))])
	if err = s.save(ctx, state); err != nil {
		return state, err
	}
	return state, nil
}

func (s *flowService) GenerateAction(ctx context.Context, t domain.TimeChoice, e domain.EnergyChoice) (out *ActionOutcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]any{"time": string(t), "energy": string(e)}
	defer s.observe(ctx, "next-action", time.Now(), fields, &err)

	state := s.load(ctx)
	if state.SelectedIdea == nil {
		return nil, fmt.Errorf("%w: pick a thought before asking for a next step", domain.ErrInvalidTransition)
	}

	result, err := s.actions.NextAction(ctx, state.Selected(), t, e)
	if err != nil {
		return nil, err
	}
	fields["source"] = result.Source()

	state = state.WithAction(result.Action)
	if err = s.save(ctx, state); err != nil {
		return nil, err
	}
	return &ActionOutcome{State: state, Result: result}, nil
}

func (s *flowService) Back(ctx context.Context) (state domain.SessionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(ctx, "back", time.Now(), nil, &err)

	state = s.load(ctx).Back()
	if err = s.save(ctx, state); err != nil {
		return state, err
	}
	return state, nil
}

func (s *flowService) Reset(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(ctx, "reset", time.Now(), nil, &err)

	return session.Clear(ctx, s.storage)
}

func (s *flowService) load(ctx context.Context) domain.SessionState {
	return session.Load(ctx, s.storage, slog.Default())
}

func (s *flowService) save(ctx context.Context, state domain.SessionState) error {
	return session.Save(ctx, state, s.storage)
}

func (s *flowService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
