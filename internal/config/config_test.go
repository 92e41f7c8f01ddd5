package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OpenAPIURL != "http://localhost:7272/openapi.json" {
		t.Fatalf("openapi_url default = %q", cfg.OpenAPIURL)
	}
	if cfg.APIBaseURL != "http://localhost:7272" {
		t.Fatalf("api_base_url default = %q", cfg.APIBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout default = %v", cfg.Timeout)
	}
	if cfg.Insecure || cfg.Verbose {
		t.Fatalf("insecure/verbose must default to false")
	}
	if cfg.HistoryType != "none" {
		t.Fatalf("history_type default = %q", cfg.HistoryType)
	}
	if cfg.LLMBaseURL != "https://api.openai.com/v1" {
		t.Fatalf("llm_base_url default = %q", cfg.LLMBaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APIKI_OPENAPI_URL", "https://example.com/spec.json")
	t.Setenv("APIKI_TIMEOUT_SECONDS", "5")
	t.Setenv("APIKI_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAPIURL != "https://example.com/spec.json" {
		t.Fatalf("openapi_url = %q", cfg.OpenAPIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Fatalf("verbose override not applied")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("APIKI_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestLoadRejectsNonPositiveHistoryTTL(t *testing.T) {
	t.Setenv("APIKI_HISTORY_TTL_SECONDS", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative history TTL")
	}
}
