package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PINELY_CONFIG", "PINELY_LLM_PROVIDER", "PINELY_GEMINI_API_KEY", "GEMINI_API_KEY",
		"PINELY_LLM_ENABLED", "PINELY_LLM_MODEL", "PINELY_LLM_TIMEOUT_MS",
		"PINELY_LLM_ORGANIZE_TIMEOUT_MS", "PINELY_LLM_ACTION_TIMEOUT_MS",
	} {
		t.Setenv(name, "")
	}
}

func TestDefaultConfig_DisabledWithoutRetries(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, "gemini-2.5-flash", cfg.EffectiveModel())
}

func TestLoadConfig_NoKeyLeavesModelDisabled(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_PlaceholderKeyIgnored(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "your_api_key_here")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadConfig_GeminiKeyEnables(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "abc")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "abc", cfg.APIKey)
}

func TestLoadConfig_OllamaProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("PINELY_LLM_PROVIDER", "ollama")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "llama3.2", cfg.EffectiveModel())
}

func TestLoadConfig_ExplicitDisable(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "abc")
	t.Setenv("PINELY_LLM_ENABLED", "false")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("PINELY_LLM_PROVIDER", "carrier-pigeon")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("PINELY_LLM_TIMEOUT_MS", "9000")
	t.Setenv("PINELY_LLM_ACTION_TIMEOUT_MS", "7000")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskAction))
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskOrganize))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("PINELY_LLM_ORGANIZE_TIMEOUT_MS", "not-a-number")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskOrganize))
}

func TestLoadConfig_YAMLFileThenEnv(t *testing.T) {
	clearLLMEnv(t)
	path := filepath.Join(t.TempDir(), "pinely.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: ollama
  enabled: true
  endpoint: http://ollama.internal:11434
  model: mistral
  tasks:
    action:
      temperature: 0.9
      timeout_ms: 3000
`), 0o644))
	t.Setenv("PINELY_CONFIG", path)
	t.Setenv("PINELY_LLM_MODEL", "qwen2.5")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://ollama.internal:11434", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 0.9, cfg.Tasks[TaskAction].Temperature)
	assert.Equal(t, 3000, cfg.TaskTimeout(TaskAction))
	assert.Equal(t, 256, cfg.Tasks[TaskAction].MaxTokens)
}

func TestLoadConfig_BadYAMLFile(t *testing.T) {
	clearLLMEnv(t)
	path := filepath.Join(t.TempDir(), "pinely.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not, a, map"), 0o644))
	t.Setenv("PINELY_CONFIG", path)

	_, err := LoadConfig()

	assert.Error(t, err)
}
