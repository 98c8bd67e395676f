package llm

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskOrganize TaskType = "organize"
	TaskAction   TaskType = "action"
)

// Provider selects which model backend the client talks to.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// placeholderAPIKey is the value shipped in example env files.
const placeholderAPIKey = "your_api_key_here"

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutMs   int     `yaml:"timeout_ms"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	Provider   Provider
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig

	// GeminiBaseURL overrides the Gemini API host; empty uses the SDK default.
	GeminiBaseURL string
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// The model is disabled until a provider is configured.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		Provider:   ProviderGemini,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "",
		TimeoutMs:  20000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskOrganize: {Temperature: 0.4, MaxTokens: 2048, TimeoutMs: 20000},
			TaskAction:   {Temperature: 0.7, MaxTokens: 256, TimeoutMs: 15000},
		},
	}
}

// DefaultModel returns the model used when none is configured.
func (p Provider) DefaultModel() string {
	if p == ProviderOllama {
		return "llama3.2"
	}
	return "gemini-2.5-flash"
}

// EffectiveModel returns the configured model or the provider default.
func (c LLMConfig) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	return c.Provider.DefaultModel()
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// LoadConfig reads LLM configuration from an optional YAML file named by
// PINELY_CONFIG and then from environment variables, falling back to
// defaults for any unset values. Environment variables win over the file.
func LoadConfig() (LLMConfig, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("PINELY_CONFIG"); path != "" {
		if err := applyConfigFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	explicitProvider := false
	if v := os.Getenv("PINELY_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
		explicitProvider = true
	}
	if v := firstEnv("PINELY_GEMINI_API_KEY", "GEMINI_API_KEY"); v != "" && v != placeholderAPIKey {
		cfg.APIKey = v
	}
	if v := os.Getenv("PINELY_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PINELY_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PINELY_GEMINI_BASE_URL"); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := os.Getenv("PINELY_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PINELY_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PINELY_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskOrganize, "PINELY_LLM_ORGANIZE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAction, "PINELY_LLM_ACTION_TIMEOUT_MS")

	switch cfg.Provider {
	case ProviderGemini:
		cfg.Enabled = cfg.Enabled || cfg.APIKey != ""
	case ProviderOllama:
		cfg.Enabled = cfg.Enabled || explicitProvider
	default:
		return cfg, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	if v := os.Getenv("PINELY_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}

// fileConfig mirrors the YAML layout of the optional config file.
type fileConfig struct {
	LLM struct {
		Enabled    *bool                 `yaml:"enabled"`
		Provider   string                `yaml:"provider"`
		LogCalls   *bool                 `yaml:"log_calls"`
		Endpoint   string                `yaml:"endpoint"`
		Model      string                `yaml:"model"`
		APIKey     string                `yaml:"api_key"`
		TimeoutMs  int                   `yaml:"timeout_ms"`
		MaxRetries *int                  `yaml:"max_retries"`
		Tasks      map[string]TaskConfig `yaml:"tasks"`
	} `yaml:"llm"`
}

func applyConfigFile(cfg *LLMConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.LLM.Enabled != nil {
		cfg.Enabled = *fc.LLM.Enabled
	}
	if fc.LLM.Provider != "" {
		cfg.Provider = Provider(fc.LLM.Provider)
	}
	if fc.LLM.LogCalls != nil {
		cfg.LogCalls = *fc.LLM.LogCalls
	}
	if fc.LLM.Endpoint != "" {
		cfg.Endpoint = fc.LLM.Endpoint
	}
	if fc.LLM.Model != "" {
		cfg.Model = fc.LLM.Model
	}
	if fc.LLM.APIKey != "" && fc.LLM.APIKey != placeholderAPIKey {
		cfg.APIKey = fc.LLM.APIKey
	}
	if fc.LLM.TimeoutMs > 0 {
		cfg.TimeoutMs = fc.LLM.TimeoutMs
	}
	if fc.LLM.MaxRetries != nil && *fc.LLM.MaxRetries >= 0 {
		cfg.MaxRetries = *fc.LLM.MaxRetries
	}
	for name, tc := range fc.LLM.Tasks {
		task := TaskType(name)
		cur := cfg.Tasks[task]
		if tc.Temperature > 0 {
			cur.Temperature = tc.Temperature
		}
		if tc.MaxTokens > 0 {
			cur.MaxTokens = tc.MaxTokens
		}
		if tc.TimeoutMs > 0 {
			cur.TimeoutMs = tc.TimeoutMs
		}
		cfg.Tasks[task] = cur
	}
	return nil
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
