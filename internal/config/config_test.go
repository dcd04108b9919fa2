package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const validYAML = `
edgar:
  user_agent: "Test User test@divscout.dev"
database:
  host: localhost
  name: divscout
  user: divscout
  password: testpass
`

func TestLoad(t *testing.T) {
	yaml := `
edgar:
  user_agent: "Test User test@divscout.dev"
  timeout: 10s
database:
  host: db.internal
  port: 5433
  name: divscout
  user: divscout
  password: testpass
parser:
  max_reasonable: 25.0
  overrides:
    "0000018230": 10.0
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Edgar.UserAgent != "Test User test@divscout.dev" {
		t.Errorf("Edgar.UserAgent = %q", cfg.Edgar.UserAgent)
	}
	if cfg.Edgar.Timeout != 10*time.Second {
		t.Errorf("Edgar.Timeout = %v, want 10s", cfg.Edgar.Timeout)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("Database = %s:%d, want db.internal:5433", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Parser.MaxReasonable != 25.0 {
		t.Errorf("Parser.MaxReasonable = %v, want 25.0", cfg.Parser.MaxReasonable)
	}
	if got := cfg.Parser.Overrides["0000018230"]; got != 10.0 {
		t.Errorf("Parser.Overrides[0000018230] = %v, want 10.0", got)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")
	t.Setenv("TEST_SEC_UA", "Jane Doe jane@divscout.dev")

	yaml := `
edgar:
  user_agent: "${TEST_SEC_UA}"
database:
  host: localhost
  name: divscout
  user: divscout
  password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Password != "secret123" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "secret123")
	}
	if cfg.Edgar.UserAgent != "Jane Doe jane@divscout.dev" {
		t.Errorf("Edgar.UserAgent = %q", cfg.Edgar.UserAgent)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, validYAML)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Edgar.BaseURL != DefaultBaseURL {
		t.Errorf("Edgar.BaseURL = %q, want default", cfg.Edgar.BaseURL)
	}
	if cfg.Edgar.RequestsPerSec != DefaultRequestsPerSec {
		t.Errorf("Edgar.RequestsPerSec = %v, want %v", cfg.Edgar.RequestsPerSec, DefaultRequestsPerSec)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Parser.MaxReasonable != DefaultMaxReasonable {
		t.Errorf("Parser.MaxReasonable = %v, want %v", cfg.Parser.MaxReasonable, DefaultMaxReasonable)
	}
	if cfg.Parser.ReviewThreshold != DefaultReviewThreshold {
		t.Errorf("Parser.ReviewThreshold = %v, want %v", cfg.Parser.ReviewThreshold, DefaultReviewThreshold)
	}
	if cfg.Fetcher.Concurrency != DefaultConcurrency {
		t.Errorf("Fetcher.Concurrency = %d, want %d", cfg.Fetcher.Concurrency, DefaultConcurrency)
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeTempFile(t, validYAML)

	if _, err := LoadAndValidate(path); err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Edgar.UserAgent = "Test User test@divscout.dev"
		cfg.Database = DBConfig{Host: "localhost", Name: "d", User: "u", Password: "p"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing user agent", func(c *Config) { c.Edgar.UserAgent = "" }},
		{"placeholder user agent", func(c *Config) { c.Edgar.UserAgent = "Anonymous no-reply@example.com" }},
		{"rate above SEC cap", func(c *Config) { c.Edgar.RequestsPerSec = 20 }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"min conns above max", func(c *Config) { c.Database.MinConns = 99 }},
		{"ceiling below floor", func(c *Config) { c.Parser.MaxReasonable = 0.001 }},
		{"review threshold above 1", func(c *Config) { c.Parser.ReviewThreshold = 1.5 }},
		{"dedup tolerance below 1", func(c *Config) { c.Parser.DedupTolerance = 0.5 }},
		{"inverted ratio window", func(c *Config) { c.Parser.AnnualRatioLow = 5.0 }},
		{"bad override key", func(c *Config) { c.Parser.Overrides = map[string]float64{"18230": 10} }},
		{"bad override ceiling", func(c *Config) { c.Parser.Overrides = map[string]float64{"0000018230": -1} }},
		{"zero concurrency", func(c *Config) { c.Fetcher.Concurrency = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file succeeded, want error")
	}
}
