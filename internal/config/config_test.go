package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "redis:\n  addr: localhost:6379\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Session.CookieName != "factcheck-session" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Model.Provider != "gemini" || cfg.Model.APIKeyEnv != "GEMINI_API_KEY" {
		t.Fatalf("model defaults not applied: %+v", cfg.Model)
	}
	if cfg.SessionTTL() != 24*time.Hour || cfg.ModelTimeout() != 60*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.SessionTTL(), cfg.ModelTimeout())
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr not read")
	}
}

func TestLoadReadsModelSection(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
model:
  provider: openai
  name: gpt-4o-mini
  api_key_env: OPENAI_API_KEY
  timeout: 15s
  verbose: true
session:
  ttl: 2h
  secure: true
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model.Provider != "openai" || cfg.Model.Name != "gpt-4o-mini" || !cfg.Model.Verbose {
		t.Fatalf("unexpected model config %+v", cfg.Model)
	}
	if cfg.ModelTimeout() != 15*time.Second || cfg.SessionTTL() != 2*time.Hour || !cfg.Session.Secure {
		t.Fatalf("unexpected durations or flags: %+v", cfg)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	if _, err := Load(writeConfig(t, "model:\n  provider: llama\n")); err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Model.APIKeyEnv = "FACTCHECK_TEST_KEY"

	t.Setenv("FACTCHECK_TEST_KEY", "")
	if _, err := cfg.APIKey(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	t.Setenv("FACTCHECK_TEST_KEY", "secret")
	key, err := cfg.APIKey()
	if err != nil || key != "secret" {
		t.Fatalf("expected secret, got %q (%v)", key, err)
	}
}

func TestTTLDuration(t *testing.T) {
	if TTLDuration("", time.Minute) != time.Minute {
		t.Fatalf("expected fallback for empty")
	}
	if TTLDuration("bogus", time.Minute) != time.Minute {
		t.Fatalf("expected fallback for invalid")
	}
	if TTLDuration("90s", time.Minute) != 90*time.Second {
		t.Fatalf("expected parsed duration")
	}
}
