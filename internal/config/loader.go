package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

// Load reads a JSONC config file, standardizes it to plain JSON, applies
// TASKS_* environment overrides and fills defaults. A missing file is not
// an error; defaults and environment are used instead.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			std, err := hujson.Standardize(data)
			if err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
			if err := json.Unmarshal(std, &cfg); err != nil {
				return Config{}, fmt.Errorf("unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("TASKS_HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}
	if v, ok := os.LookupEnv("TASKS_SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TASKS_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.HTTP.ShutdownTimeout = Duration(d)
	}
	if v, ok := os.LookupEnv("TASKS_STORE_DRIVER"); ok {
		cfg.Store.Driver = v
	}
	if v, ok := os.LookupEnv("TASKS_STORE_DSN"); ok {
		cfg.Store.DSN = v
	}
	if v, ok := os.LookupEnv("TASKS_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	return nil
}
