package agent

import (
	"time"

	"go.uber.org/zap"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultModel      = "gpt-4o-mini"
	DefaultLLMBaseURL = "https://api.openai.com/v1"
	DefaultMaxSteps   = 10
)

// Config holds the immutable settings for an API agent.
type Config struct {
	// OpenAPIURL and APIBaseURL configure the inner direct client.
	OpenAPIURL string
	APIBaseURL string
	// Headers are merged into every API request issued on the agent's behalf.
	Headers map[string]string

	// Model is the chat model asked to plan API calls.
	Model string
	// Temperature for the model; zero means deterministic.
	Temperature float64
	// APIKey authenticates against the LLM endpoint. Empty falls back to the
	// OPENAI_API_KEY environment variable.
	APIKey string
	// LLMBaseURL points at an OpenAI-compatible endpoint serving
	// /chat/completions.
	LLMBaseURL string

	// MaxSteps caps the number of model round-trips per query.
	MaxSteps int
	// Timeout bounds each HTTP request (API and LLM alike).
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification for API calls.
	InsecureSkipVerify bool
	// Verbose enables per-step logging.
	Verbose bool
	// Logger receives agent logs. Defaults to a nop logger.
	Logger *zap.SugaredLogger
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.LLMBaseURL == "" {
		c.LLMBaseURL = DefaultLLMBaseURL
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop().Sugar()
	}
	return c
}
