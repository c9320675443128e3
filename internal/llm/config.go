package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation being performed. Each task has
// its own sampling defaults and timeout.
type TaskType string

const (
	TaskConversation TaskType = "conversation"
	TaskResearch     TaskType = "research"
	TaskAssets       TaskType = "assets"
	TaskAnalysis     TaskType = "analysis"
	TaskReport       TaskType = "report"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the completion client.
type Config struct {
	Endpoint   string
	APIKey     string
	Model      string
	LogCalls   bool
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with the stock task parameters.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://api.openai.com",
		Model:      "gpt-4o",
		TimeoutMs:  60000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskConversation: {Temperature: 0.5, TopP: 0.95, MaxTokens: 800, TimeoutMs: 30000},
			TaskResearch:     {Temperature: 0.3, TopP: 0.95, MaxTokens: 2500, TimeoutMs: 90000},
			TaskAssets:       {Temperature: 0.3, TopP: 0.95, MaxTokens: 800, TimeoutMs: 60000},
			TaskAnalysis:     {Temperature: 0.3, TopP: 0.95, MaxTokens: 3000, TimeoutMs: 90000},
			TaskReport:       {Temperature: 0.3, TopP: 1.0, MaxTokens: 4500, TimeoutMs: 120000},
		},
	}
}

// LoadConfig reads completion-client configuration from environment
// variables, falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("COMMUNITY_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("COMMUNITY_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("COMMUNITY_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("COMMUNITY_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("COMMUNITY_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("COMMUNITY_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskConversation, "COMMUNITY_LLM_CONVERSATION_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskResearch, "COMMUNITY_LLM_RESEARCH_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAssets, "COMMUNITY_LLM_ASSETS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAnalysis, "COMMUNITY_LLM_ANALYSIS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskReport, "COMMUNITY_LLM_REPORT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
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
