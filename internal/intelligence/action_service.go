package intelligence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/llm"
)

// ActionService proposes one concrete next step for a chosen thought.
type ActionService interface {
	// NextAction returns a non-empty action. Model failures degrade to the
	// energy-keyed templates; only domain.ErrInvalidInput is returned.
	NextAction(ctx context.Context, idea string, t domain.TimeChoice, e domain.EnergyChoice) (*ActionResult, error)
}

// ActionOption configures an ActionService.
type ActionOption func(*actionService)

// WithRand sets the random source used to pick fallback templates.
func WithRand(rng RandSource) ActionOption {
	return func(s *actionService) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithActionLogger sets the logger used to report fallbacks.
func WithActionLogger(logger *slog.Logger) ActionOption {
	return func(s *actionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type actionService struct {
	client llm.LLMClient
	rng    RandSource
	logger *slog.Logger
}

// NewActionService creates an ActionService. client may be nil.
func NewActionService(client llm.LLMClient, opts ...ActionOption) ActionService {
	s := &actionService{
		client: client,
		rng:    DefaultRand(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateFocusRequest checks the next-action precondition.
func ValidateFocusRequest(req domain.FocusRequest) error {
	if strings.TrimSpace(req.Idea) == "" {
		return fmt.Errorf("%w: idea is required", domain.ErrInvalidInput)
	}
	if !req.Time.Valid() {
		return fmt.Errorf("%w: unknown time choice %q", domain.ErrInvalidInput, req.Time)
	}
	if !req.Energy.Valid() {
		return fmt.Errorf("%w: unknown energy choice %q", domain.ErrInvalidInput, req.Energy)
	}
	return nil
}

func (s *actionService) NextAction(ctx context.Context, idea string, t domain.TimeChoice, e domain.EnergyChoice) (*ActionResult, error) {
	req := domain.FocusRequest{Idea: idea, Time: t, Energy: e}
	if err := ValidateFocusRequest(req); err != nil {
		return nil, err
	}

	action, model, err := s.generate(ctx, req)
	if err != nil {
		kind := llm.Classify(err)
		s.logger.WarnContext(ctx, "action_fallback", "reason", string(kind), "error", err.Error())
		return &ActionResult{
			Action:         FallbackAction(req.Idea, req.Energy, s.rng),
			Fallback:       true,
			FallbackReason: kind,
		}, nil
	}
	return &ActionResult{Action: action, Model: model}, nil
}

func (s *actionService) generate(ctx context.Context, req domain.FocusRequest) (string, string, error) {
	if s.client == nil {
		return "", "", llm.ErrNotConfigured
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAction,
		SystemPrompt: actionSystemPrompt,
		UserPrompt:   buildActionUserPrompt(req.Idea, req.Time, req.Energy),
	})
	if err != nil {
		return "", "", fmt.Errorf("llm action generation failed: %w", err)
	}

	action := strings.TrimSpace(resp.Text)
	if action == "" {
		return "", "", llm.ErrEmptyResult
	}
	return action, resp.Model, nil
}
