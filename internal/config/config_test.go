package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	yaml := []byte(`
env: test
app:
  addr: ":9090"
db:
  host: db.internal
  port: 3307
  user: app
  name: tickets
redis:
  addr: "localhost:6379"
  rate_ttl: 5m
search:
  timezone: UTC
  workers: 4
  lookahead_days: 1
  max_results: 5
currency:
  from: EUR
  to: UAH
`)
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Addr != ":9090" || cfg.DB.Port != 3307 || cfg.Search.Workers != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Redis.RateTTL != 5*time.Minute {
		t.Fatalf("unexpected rate ttl: %s", cfg.Redis.RateTTL)
	}
	if cfg.DB.MaxOpenConns != 25 {
		t.Fatalf("default max_open_conns not applied: %d", cfg.DB.MaxOpenConns)
	}
	want := "app:@tcp(db.internal:3307)/tickets?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	if got := cfg.DB.DSN(); got != want {
		t.Fatalf("unexpected dsn: %s", got)
	}
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("search:\n  timezone: Mars/Olympus\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestLoad_RejectsBadCurrencyCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("currency:\n  from: EURO\n  to: UAH\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for currency code")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Fatalf("%q: got %s want %s", in, got, want)
		}
	}
}
