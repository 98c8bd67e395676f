package intelligence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/llm"
)

// MinDumpRunes is the shortest brain dump, after trimming, worth organizing.
const MinDumpRunes = 10

// OrganizeService clusters a brain dump into themed groups.
type OrganizeService interface {
	// Organize never fails for valid input: model problems degrade to the
	// keyword fallback. Only domain.ErrInvalidInput is returned.
	Organize(ctx context.Context, rawDump string) (*OrganizeResult, error)
}

type organizeService struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewOrganizeService creates an OrganizeService. client may be nil, in
// which case every call takes the fallback path.
func NewOrganizeService(client llm.LLMClient, logger *slog.Logger) OrganizeService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &organizeService{client: client, logger: logger}
}

// ValidateDump checks the organize precondition.
func ValidateDump(rawDump string) error {
	if utf8.RuneCountInString(strings.TrimSpace(rawDump)) < MinDumpRunes {
		return fmt.Errorf("%w: brain dump must be at least %d characters", domain.ErrInvalidInput, MinDumpRunes)
	}
	return nil
}

func (s *organizeService) Organize(ctx context.Context, rawDump string) (*OrganizeResult, error) {
	if err := ValidateDump(rawDump); err != nil {
		return nil, err
	}

	clusters, model, err := s.generate(ctx, rawDump)
	if err != nil {
		kind := llm.Classify(err)
		s.logger.WarnContext(ctx, "organize_fallback", "reason", string(kind), "error", err.Error())
		return &OrganizeResult{
			Clusters:       FallbackClusters(rawDump),
			Fallback:       true,
			FallbackReason: kind,
		}, nil
	}

	return &OrganizeResult{Clusters: clusters, Model: model}, nil
}

// organizeLLMResponse is the JSON structure expected from the LLM.
type organizeLLMResponse struct {
	Clusters []domain.Cluster `json:"clusters"`
}

func (s *organizeService) generate(ctx context.Context, rawDump string) ([]domain.Cluster, string, error) {
	if s.client == nil {
		return nil, "", llm.ErrNotConfigured
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskOrganize,
		SystemPrompt: organizeSystemPrompt,
		UserPrompt:   buildOrganizeUserPrompt(rawDump),
	})
	if err != nil {
		return nil, "", fmt.Errorf("llm organize generation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[organizeLLMResponse](resp.Text, validateOrganizeResponse)
	if err != nil {
		return nil, "", err
	}

	clusters, err := normalizeClusters(parsed.Clusters)
	if err != nil {
		return nil, "", err
	}
	return clusters, resp.Model, nil
}

func validateOrganizeResponse(resp organizeLLMResponse) error {
	if len(resp.Clusters) == 0 {
		return fmt.Errorf("clusters must be a non-empty list")
	}
	if len(resp.Clusters) > MaxClusters {
		return fmt.Errorf("at most %d clusters allowed, got %d", MaxClusters, len(resp.Clusters))
	}
	for i, c := range resp.Clusters {
		if strings.TrimSpace(c.Title) == "" {
			return fmt.Errorf("cluster %d: title is required", i)
		}
		if len(c.Ideas) == 0 {
			return fmt.Errorf("cluster %d: ideas must be a non-empty list", i)
		}
		for j, idea := range c.Ideas {
			if strings.TrimSpace(idea) == "" {
				return fmt.Errorf("cluster %d: idea %d is blank", i, j)
			}
		}
	}
	return nil
}

// normalizeClusters trims text, fills missing ids with the 1-based
// position and rejects duplicate ids.
func normalizeClusters(in []domain.Cluster) ([]domain.Cluster, error) {
	out := make([]domain.Cluster, len(in))
	seen := make(map[string]bool, len(in))
	for i, c := range in {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = domain.ClusterID(i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate cluster id %q", llm.ErrInvalidOutput, id)
		}
		seen[id] = true

		ideas := make([]string, len(c.Ideas))
		for j, idea := range c.Ideas {
			ideas[j] = strings.TrimSpace(idea)
		}
		out[i] = domain.Cluster{ID: id, Title: strings.TrimSpace(c.Title), Ideas: ideas}
	}
	return out, nil
}
