// Package config loads the optional scout config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config carries the settings scout reads from its TOML config file.
// Command-line flags override any of these.
type Config struct {
	APIURL      string
	Output      string
	Tab         string
	RefreshSecs int
	UTC         bool
}

const defaultTab = "endpoints"

// DefaultPath is ~/.config/scout/config.toml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		h, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config dir")
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "scout", "config.toml"), nil
}

// Load parses the config at path, falling back to defaults when the file is
// missing. An empty path means the default location.
func Load(path string) (Config, error) {
	cfg := Config{Output: "plain", Tab: defaultTab}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		Output      string `toml:"output"`
		Tab         string `toml:"tab"`
		RefreshSecs int    `toml:"refresh_secs"`
		UTC         bool   `toml:"utc"`
	}
	if err := toml.Unmarshal(b, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if s := strings.TrimSpace(raw.APIURL); s != "" {
		cfg.APIURL = s
	}
	if s := strings.TrimSpace(raw.Output); s != "" {
		cfg.Output = s
	}
	if s := strings.ToLower(strings.TrimSpace(raw.Tab)); s != "" {
		cfg.Tab = s
	}
	if raw.RefreshSecs > 0 {
		cfg.RefreshSecs = raw.RefreshSecs
	}
	cfg.UTC = raw.UTC
	return cfg, nil
}
