// Package config loads and validates the threads server configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds server configuration.
type Config struct {
	Port           int      `yaml:"port" validate:"min=1,max=65535"`
	DevMode        bool     `yaml:"dev_mode"`
	Store          string   `yaml:"store" validate:"oneof=memory sqlite"`
	Seed           bool     `yaml:"seed"`
	DefaultLimit   int      `yaml:"default_limit" validate:"min=1"`
	MaxLimit       int      `yaml:"max_limit" validate:"min=1,gtefield=DefaultLimit"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"required,min=1,dive,url"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           5000,
		Store:          StoreMemory,
		Seed:           true,
		DefaultLimit:   10,
		MaxLimit:       100,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and environment overrides, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and the store name.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnv overrides fields from PORT and THREADS_* variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("THREADS_DEV_MODE"); v != "" {
		c.DevMode = v == "true"
	}
	if v := os.Getenv("THREADS_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("THREADS_SEED"); v != "" {
		c.Seed = v == "true"
	}
	if v := os.Getenv("THREADS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
	return nil
}
