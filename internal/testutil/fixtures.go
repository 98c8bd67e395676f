package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/llm"
)

// SampleDump is a brain dump that hits three fallback buckets.
const SampleDump = "finish the report. also call mom. thinking about learning guitar"

// NewTestClusters returns a small, valid cluster set.
func NewTestClusters() []domain.Cluster {
	return []domain.Cluster{
		{ID: "1", Title: "Work & Projects", Ideas: []string{"finish the report"}},
		{ID: "2", Title: "People & Connections", Ideas: []string{"also call mom", "text Sam back"}},
	}
}

// StateOption customizes a SessionState built by NewTestState.
type StateOption func(*domain.SessionState)

func WithSelected(idea string) StateOption {
	return func(s *domain.SessionState) {
		*s = s.SelectIdea(idea)
	}
}

func WithAction(action string) StateOption {
	return func(s *domain.SessionState) {
		*s = s.WithAction(action)
	}
}

// NewTestState returns a state on the clusters screen.
func NewTestState(opts ...StateOption) domain.SessionState {
	s := domain.NewSessionState().WithRawDump(SampleDump).WithClusters(NewTestClusters())
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// StubLLMClient answers each task with a canned response or error.
type StubLLMClient struct {
	mu        sync.Mutex
	Responses map[llm.TaskType]string
	Errors    map[llm.TaskType]error
	Requests  []llm.GenerateRequest
}

func (c *StubLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Requests = append(c.Requests, req)
	if err := c.Errors[req.Task]; err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Text: c.Responses[req.Task], Model: "stub-model"}, nil
}

func (c *StubLLMClient) Available(_ context.Context) bool { return true }

// Calls returns how many requests were made for task.
func (c *StubLLMClient) Calls(task llm.TaskType) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.Requests {
		if r.Task == task {
			n++
		}
	}
	return n
}
