package client

import (
	"time"

	"go.uber.org/zap"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultOpenAPIURL = "http://localhost:7272/openapi.json"
	DefaultAPIBaseURL = "http://localhost:7272"
	DefaultTimeout    = 30 * time.Second
)

// Config holds the immutable settings for an API client. It is copied at
// construction and never mutated afterwards.
type Config struct {
	// OpenAPIURL is where the spec document is fetched from, once, at
	// construction time.
	OpenAPIURL string
	// APIBaseURL is the fallback base URL used when the spec declares no
	// servers entry.
	APIBaseURL string
	// Headers are merged into every request, overriding the default
	// Content-Type: application/json on key collision.
	Headers map[string]string
	// Timeout bounds both the spec fetch and each verb call.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
	// Verbose enables per-request logging.
	Verbose bool
	// Logger receives request/response logs. Defaults to a nop logger.
	Logger *zap.SugaredLogger
}

func (c Config) withDefaults() Config {
	if c.OpenAPIURL == "" {
		c.OpenAPIURL = DefaultOpenAPIURL
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop().Sugar()
	}
	return c
}
