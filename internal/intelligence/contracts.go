package intelligence

import (
	"math/rand/v2"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/llm"
)

// Source values reported alongside every result.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// OrganizeResult is the outcome of clustering a brain dump.
type OrganizeResult struct {
	Clusters []domain.Cluster `json:"clusters"`
	// Fallback is true when the clusters came from the keyword heuristic
	// instead of the model. It is informational only.
	Fallback       bool            `json:"fallback"`
	FallbackReason llm.FailureKind `json:"fallback_reason,omitempty"`
	Model          string          `json:"model,omitempty"`
}

// Source returns "llm" or "fallback".
func (r *OrganizeResult) Source() string {
	if r.Fallback {
		return SourceFallback
	}
	return SourceLLM
}

// ActionResult is the outcome of generating a next action.
type ActionResult struct {
	Action         string          `json:"action"`
	Fallback       bool            `json:"fallback"`
	FallbackReason llm.FailureKind `json:"fallback_reason,omitempty"`
	Model          string          `json:"model,omitempty"`
}

// Source returns "llm" or "fallback".
func (r *ActionResult) Source() string {
	if r.Fallback {
		return SourceFallback
	}
	return SourceLLM
}

// RandSource picks a uniform index in [0, n). *rand.Rand satisfies it,
// which lets tests pin fallback choices with a seeded generator.
type RandSource interface {
	IntN(n int) int
}

// globalRand draws from the goroutine-safe top-level generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns the process-wide random source.
func DefaultRand() RandSource { return globalRand{} }
