package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/echo/pkg/autosave"
)

// fileConfig is the optional per-vault configuration, read from
// echo.yaml in the vault directory. Environment variables override the
// file; missing values fall back to defaults.
type fileConfig struct {
	DefaultFolder string `yaml:"default_folder"`
	SlotFile      string `yaml:"slot_file"`
	AutosaveDelay string `yaml:"autosave_delay"` // Go duration string, e.g. "500ms"
	EventBuffer   int    `yaml:"event_buffer"`
}

// ConfigFile is the well-known config file name inside a vault.
const ConfigFile = "echo.yaml"

func loadConfig(vault string) fileConfig {
	var cfg fileConfig

	data, err := os.ReadFile(filepath.Join(vault, ConfigFile))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			slog.Warn("ignoring malformed config", "file", ConfigFile, "error", err)
			cfg = fileConfig{}
		}
	}

	cfg.DefaultFolder = envOr("ECHO_DEFAULT_FOLDER", cfg.DefaultFolder)
	cfg.SlotFile = envOr("ECHO_SLOT_FILE", cfg.SlotFile)
	cfg.AutosaveDelay = envOr("ECHO_AUTOSAVE_DELAY", cfg.AutosaveDelay)
	return cfg
}

// autosaveDelay parses the configured debounce delay, falling back to
// the coordinator's default.
func (c fileConfig) autosaveDelay() time.Duration {
	if c.AutosaveDelay == "" {
		return autosave.DefaultDelay
	}
	d, err := time.ParseDuration(c.AutosaveDelay)
	if err != nil || d <= 0 {
		slog.Warn("invalid autosave_delay, using default", "value", c.AutosaveDelay)
		return autosave.DefaultDelay
	}
	return d
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
