package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Provider = ProviderOllama
	cfg.Endpoint = endpoint
	return cfg
}

type recordingObserver struct {
	events []LLMCallEvent
}

func (r *recordingObserver) OnCallComplete(e LLMCallEvent) { r.events = append(r.events, e) }

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 256, req.Options.NumPredict)

		resp := ollamaResponse{
			Model:    "llama3.2",
			Response: "Send mom a text saying you'll call tonight.",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewOllamaClient(testConfig(srv.URL), obs)
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskAction,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, "Send mom a text saying you'll call tonight.", resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, ProviderOllama, obs.events[0].Provider)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskOrganize: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	obs := &recordingObserver{}
	client := NewOllamaClient(cfg, obs)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskOrganize,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "TIMEOUT", obs.events[0].ErrorCode)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskOrganize: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 1000},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskOrganize,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, FailureTransport, Classify(err))
}

func TestOllamaClient_Generate_SingleAttemptByDefault(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskAction,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 1, attempts)
}

func TestOllamaClient_Generate_RetryWhenConfigured(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		resp := ollamaResponse{Model: "llama3.2", Response: "ok"}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskAction,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, attempts)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), nil)
	assert.True(t, client.Available(context.Background()))

	down := NewOllamaClient(testConfig("http://127.0.0.1:1"), nil)
	assert.False(t, down.Available(context.Background()))
}

func TestNewClient_Disabled(t *testing.T) {
	_, err := NewClient(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClient_GeminiWithoutKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Provider = ProviderGemini

	_, err := NewClient(cfg, nil)

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient(testConfig("http://127.0.0.1:1"), nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}
