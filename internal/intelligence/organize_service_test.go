package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	calls    int
	lastReq  llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gemini-2.5-flash"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

const sampleDump = "finish the report. also call mom. thinking about learning guitar"

func TestOrganize_RejectsShortInput(t *testing.T) {
	client := &mockLLMClient{response: `{"clusters":[]}`}
	svc := NewOrganizeService(client, nil)

	for _, raw := range []string{"", "   ", "too short", "  123456789  "} {
		_, err := svc.Organize(context.Background(), raw)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "input %q", raw)
	}
	assert.Zero(t, client.calls, "model must not be called for invalid input")
}

func TestOrganize_TenRunesAccepted(t *testing.T) {
	svc := NewOrganizeService(nil, nil)
	res, err := svc.Organize(context.Background(), "  1234567890 ")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
}

func TestOrganize_ModelOutputUsed(t *testing.T) {
	client := &mockLLMClient{response: "Sure! Here you go:\n```json\n" +
		`{"clusters":[{"id":"a","title":"Work","ideas":["finish the report"]},` +
		`{"id":"b","title":" Family ","ideas":["call mom "]}]}` + "\n```"}
	svc := NewOrganizeService(client, nil)

	res, err := svc.Organize(context.Background(), sampleDump)

	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, SourceLLM, res.Source())
	assert.Equal(t, "gemini-2.5-flash", res.Model)
	assert.Equal(t, []domain.Cluster{
		{ID: "a", Title: "Work", Ideas: []string{"finish the report"}},
		{ID: "b", Title: "Family", Ideas: []string{"call mom"}},
	}, res.Clusters)

	assert.Equal(t, llm.TaskOrganize, client.lastReq.Task)
	assert.Equal(t, organizeSystemPrompt, client.lastReq.SystemPrompt)
	assert.Contains(t, client.lastReq.UserPrompt, sampleDump)
}

func TestOrganize_MissingIDsFilledByPosition(t *testing.T) {
	client := &mockLLMClient{response: `{"clusters":[{"title":"A","ideas":["x"]},{"title":"B","ideas":["y"]}]}`}
	svc := NewOrganizeService(client, nil)

	res, err := svc.Organize(context.Background(), sampleDump)

	require.NoError(t, err)
	require.Len(t, res.Clusters, 2)
	assert.Equal(t, "1", res.Clusters[0].ID)
	assert.Equal(t, "2", res.Clusters[1].ID)
}

func TestOrganize_FallbackCases(t *testing.T) {
	tests := []struct {
		name   string
		client *mockLLMClient
		reason llm.FailureKind
	}{
		{"transport", &mockLLMClient{err: llm.ErrUnavailable}, llm.FailureTransport},
		{"timeout", &mockLLMClient{err: llm.ErrTimeout}, llm.FailureTransport},
		{"unknown error", &mockLLMClient{err: errors.New("boom")}, llm.FailureTransport},
		{"prose only", &mockLLMClient{response: "I could not do that."}, llm.FailureParse},
		{"broken json", &mockLLMClient{response: `{"clusters": [`}, llm.FailureParse},
		{"empty clusters", &mockLLMClient{response: `{"clusters": []}`}, llm.FailureParse},
		{"missing title", &mockLLMClient{response: `{"clusters":[{"id":"1","ideas":["x"]}]}`}, llm.FailureParse},
		{"empty ideas", &mockLLMClient{response: `{"clusters":[{"id":"1","title":"T","ideas":[]}]}`}, llm.FailureParse},
		{"blank idea", &mockLLMClient{response: `{"clusters":[{"id":"1","title":"T","ideas":["  "]}]}`}, llm.FailureParse},
		{"duplicate ids", &mockLLMClient{response: `{"clusters":[{"id":"1","title":"A","ideas":["x"]},{"id":"1","title":"B","ideas":["y"]}]}`}, llm.FailureParse},
		{"too many clusters", &mockLLMClient{response: `{"clusters":[` +
			`{"title":"1","ideas":["a"]},{"title":"2","ideas":["a"]},{"title":"3","ideas":["a"]},` +
			`{"title":"4","ideas":["a"]},{"title":"5","ideas":["a"]},{"title":"6","ideas":["a"]},` +
			`{"title":"7","ideas":["a"]}]}`}, llm.FailureParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewOrganizeService(tt.client, nil)

			res, err := svc.Organize(context.Background(), sampleDump)

			require.NoError(t, err)
			assert.True(t, res.Fallback)
			assert.Equal(t, SourceFallback, res.Source())
			assert.Equal(t, tt.reason, res.FallbackReason)
			assert.Equal(t, FallbackClusters(sampleDump), res.Clusters)
		})
	}
}

func TestOrganize_NilClientFallsBack(t *testing.T) {
	svc := NewOrganizeService(nil, nil)

	res, err := svc.Organize(context.Background(), sampleDump)

	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, llm.FailureTransport, res.FallbackReason)
	require.NotEmpty(t, res.Clusters)
}

func TestOrganize_FallbackIsIdempotent(t *testing.T) {
	svc := NewOrganizeService(&mockLLMClient{err: llm.ErrUnavailable}, nil)

	first, err := svc.Organize(context.Background(), sampleDump)
	require.NoError(t, err)
	second, err := svc.Organize(context.Background(), sampleDump)
	require.NoError(t, err)

	assert.Equal(t, first.Clusters, second.Clusters)
}
