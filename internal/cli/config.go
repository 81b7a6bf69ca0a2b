package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultServerURL is where `threads serve` listens by default.
const defaultServerURL = "http://localhost:5000"

// CLIConfig is the per-user settings file for the API commands.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Author    string `yaml:"author,omitempty"`
}

// configPath is ~/.config/threads/config.yaml.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating settings: %w", err)
	}
	return filepath.Join(home, ".config", "threads", "config.yaml"), nil
}

// loadConfig returns the saved settings, or empty settings before the first save.
func loadConfig() (CLIConfig, error) {
	var cfg CLIConfig

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("decoding settings %s: %w", path, err)
	}
	return cfg, nil
}

// saveConfig replaces the settings file, creating its directory on first use.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// getServerURL resolves the server to talk to: THREADS_SERVER_URL, then the
// saved server_url, then defaultServerURL.
func getServerURL() string {
	if v := os.Getenv("THREADS_SERVER_URL"); v != "" {
		return v
	}
	if cfg, err := loadConfig(); err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

// getAuthor resolves the default author: THREADS_AUTHOR, then the saved
// author. An empty result lets the server pick its own default.
func getAuthor() string {
	if v := os.Getenv("THREADS_AUTHOR"); v != "" {
		return v
	}
	cfg, _ := loadConfig()
	return cfg.Author
}
