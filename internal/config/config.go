// Package config loads and saves the adpace configuration: a TOML file for
// preferences, with store credentials overlaid from the environment so they
// never have to live on disk.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all adpace configuration.
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Postgres PostgresConfig `toml:"postgres"`
	HTTP     HTTPConfig     `toml:"http"`
	Log      LogConfig      `toml:"log"`
}

// EngineConfig holds the reporting parameters passed into each engine run.
type EngineConfig struct {
	Timezone       string   `toml:"timezone"`
	WeeksFuture    int      `toml:"weeks_future"`
	BudgetOverride *float64 `toml:"budget_override,omitempty"`
}

// SQLiteConfig points at the local usage store.
type SQLiteConfig struct {
	Path string `toml:"path,omitempty"`
}

// PostgresConfig holds the production store connection. Address comes from
// the environment in deployments; the TOML value is a local-dev convenience.
type PostgresConfig struct {
	Address       string `toml:"address,omitempty" env:"ADDRESS"`
	RunMigrations bool   `toml:"run_migrations,omitempty" env:"RUN_MIGRATIONS"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Port int `toml:"port" env:"PORT"`
}

// LogConfig configures the structured logger used by serve.
type LogConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"`
}

// SlogLevel converts the textual level into a slog.Level. Unknown levels
// default to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envOverlay mirrors the env-populated sections with ADPACE_ prefixes.
type envOverlay struct {
	Postgres PostgresConfig `envPrefix:"ADPACE_PG_"`
	HTTP     HTTPConfig     `envPrefix:"ADPACE_HTTP_"`
	Log      LogConfig      `envPrefix:"ADPACE_LOG_"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			Timezone:    "UTC",
			WeeksFuture: 6,
		},
		HTTP: HTTPConfig{Port: 8080},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "adpace")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "adpace")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultSQLitePath returns where the local usage store lives when the config
// does not name one.
func DefaultSQLitePath() string {
	return filepath.Join(ConfigDir(), "usage.db")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a specific config file path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	var overlay envOverlay
	if err := env.Parse(&overlay); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	if overlay.Postgres.Address != "" {
		cfg.Postgres.Address = overlay.Postgres.Address
	}
	if overlay.Postgres.RunMigrations {
		cfg.Postgres.RunMigrations = true
	}
	if overlay.HTTP.Port != 0 {
		cfg.HTTP.Port = overlay.HTTP.Port
	}
	if overlay.Log.Level != "" {
		cfg.Log.Level = overlay.Log.Level
	}
	if overlay.Log.Format != "" {
		cfg.Log.Format = overlay.Log.Format
	}

	if cfg.Engine.WeeksFuture <= 0 {
		cfg.Engine.WeeksFuture = 6
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = DefaultSQLitePath()
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
