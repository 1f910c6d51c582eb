package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC", cfg.Engine.Timezone)
	}
	if cfg.Engine.WeeksFuture != 6 {
		t.Errorf("weeks_future = %d, want 6", cfg.Engine.WeeksFuture)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.SQLite.Path == "" {
		t.Error("sqlite path should default to the XDG location")
	}
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
[engine]
timezone = "America/New_York"
weeks_future = 4

[http]
port = 9000
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Timezone != "America/New_York" {
		t.Errorf("timezone = %q", cfg.Engine.Timezone)
	}
	if cfg.Engine.WeeksFuture != 4 {
		t.Errorf("weeks_future = %d, want 4", cfg.Engine.WeeksFuture)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.HTTP.Port)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[postgres]
address = "postgres://file-value"

[log]
level = "debug"
`)
	t.Setenv("ADPACE_PG_ADDRESS", "postgres://env-value")
	t.Setenv("ADPACE_LOG_FORMAT", "json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Postgres.Address != "postgres://env-value" {
		t.Errorf("address = %q, want the env value", cfg.Postgres.Address)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Log.Format)
	}
	// Values without env overrides keep the file value.
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFrom_ZeroWeeksFallsBack(t *testing.T) {
	path := writeConfig(t, `
[engine]
weeks_future = 0
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.WeeksFuture != 6 {
		t.Errorf("weeks_future = %d, want the default 6", cfg.Engine.WeeksFuture)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"WARNING": slog.LevelWarn,
	}
	for in, want := range cases {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
