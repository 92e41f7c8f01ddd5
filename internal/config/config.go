package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from the environment and
// an optional .env file. CLI flags may override individual fields afterwards.
type Config struct {
	OpenAPIURL     string            `mapstructure:"openapi_url"`
	APIBaseURL     string            `mapstructure:"api_base_url"`
	Headers        map[string]string `mapstructure:"headers"`
	TimeoutSeconds int64             `mapstructure:"timeout_seconds"`
	Timeout        time.Duration     `mapstructure:"-"`
	Insecure       bool              `mapstructure:"insecure"`
	Verbose        bool              `mapstructure:"verbose"`
	LogLevel       string            `mapstructure:"log_level"`

	LLMModel   string `mapstructure:"llm_model"`
	LLMBaseURL string `mapstructure:"llm_base_url"`

	HistoryType            string        `mapstructure:"history_type"`
	HistoryPath            string        `mapstructure:"history_path"`
	HistoryTTLSeconds      int64         `mapstructure:"history_ttl_seconds"`
	HistoryCleanupSeconds  int64         `mapstructure:"history_cleanup_interval_seconds"`
	HistoryTTL             time.Duration `mapstructure:"-"`
	HistoryCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables (APIKI_ prefix) with an
// optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("openapi_url", "http://localhost:7272/openapi.json")
	v.SetDefault("api_base_url", "http://localhost:7272")
	v.SetDefault("headers", map[string]string{})
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("insecure", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("llm_model", "gpt-4o-mini")
	v.SetDefault("llm_base_url", "https://api.openai.com/v1")
	v.SetDefault("history_type", "none")
	v.SetDefault("history_path", "./data/history.db")
	v.SetDefault("history_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("history_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.SetEnvPrefix("APIKI")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if cfg.HistoryTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid history_ttl_seconds (must be positive seconds)")
	}
	if cfg.HistoryCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid history_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.HistoryTTL = time.Duration(cfg.HistoryTTLSeconds) * time.Second
	cfg.HistoryCleanupInterval = time.Duration(cfg.HistoryCleanupSeconds) * time.Second

	return &cfg, nil
}
