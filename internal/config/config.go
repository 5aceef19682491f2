package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	HTTP  HTTPConfig  `json:"http"`
	Store StoreConfig `json:"store"`
	Log   LogConfig   `json:"log"`
}

type HTTPConfig struct {
	Addr            string   `json:"addr"`
	ShutdownTimeout Duration `json:"shutdown_timeout"`
}

type StoreConfig struct {
	// memory, sqlite, postgres or mysql
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type LogConfig struct {
	Level string `json:"level"`
}

func New() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration(time.Second * 10),
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// applyDefaults fills zero-value fields from New.
func applyDefaults(cfg *Config) {
	def := New()
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = def.HTTP.Addr
	}
	if cfg.HTTP.ShutdownTimeout <= 0 {
		cfg.HTTP.ShutdownTimeout = def.HTTP.ShutdownTimeout
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = def.Store.Driver
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

// SlogLevel maps the configured level name onto slog; unknown names mean info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Duration is a time.Duration read from a string such as "10s".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}
