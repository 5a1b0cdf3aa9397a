package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation being requested.
type TaskType string

const (
	// TaskInsights produces a full insights report over a project's ideas.
	TaskInsights TaskType = "insights"
	// TaskRoadmap produces a report focused on phases and timing.
	TaskRoadmap TaskType = "roadmap"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides the global timeout if > 0
}

type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig targets a local Ollama server. Generation is disabled
// until PRIORITAS_LLM_ENABLED is set.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  60000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskInsights: {Temperature: 0.4, MaxTokens: 4096, TimeoutMs: 90000},
			TaskRoadmap:  {Temperature: 0.3, MaxTokens: 3072, TimeoutMs: 60000},
		},
	}
}

// LoadConfig reads PRIORITAS_LLM_* variables over the defaults. Malformed
// values are ignored.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("PRIORITAS_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PRIORITAS_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PRIORITAS_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PRIORITAS_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := envInt("PRIORITAS_LLM_TIMEOUT_MS", 1); ok {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("PRIORITAS_LLM_MAX_RETRIES", 0); ok {
		cfg.MaxRetries = n
	}

	applyTaskTimeoutEnv(&cfg, TaskInsights, "PRIORITAS_LLM_INSIGHTS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskRoadmap, "PRIORITAS_LLM_ROADMAP_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the task-specific timeout if set, otherwise the
// global one.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func envInt(name string, minVal int) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minVal {
		return 0, false
	}
	return n, true
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	n, ok := envInt(envName, 1)
	if !ok {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
