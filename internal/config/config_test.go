package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// clearEnv blanks every variable Load reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "THREADS_DEV_MODE", "THREADS_STORE", "THREADS_SEED", "THREADS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "threads.yaml")
	data := []byte("port: 6000\nstore: sqlite\nseed: false\ndefault_limit: 5\nallowed_origins:\n  - http://example.com\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 6000 {
		t.Errorf("port = %d, want 6000", cfg.Port)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("store = %q, want %q", cfg.Store, StoreSQLite)
	}
	if cfg.Seed {
		t.Error("seed = true, want false")
	}
	if cfg.DefaultLimit != 5 {
		t.Errorf("default_limit = %d, want 5", cfg.DefaultLimit)
	}
	if cfg.MaxLimit != 100 {
		t.Errorf("max_limit = %d, want default 100", cfg.MaxLimit)
	}
	if diff := cmp.Diff([]string{"http://example.com"}, cfg.AllowedOrigins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("THREADS_DEV_MODE", "true")
	t.Setenv("THREADS_STORE", "sqlite")
	t.Setenv("THREADS_SEED", "false")
	t.Setenv("THREADS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7000 {
		t.Errorf("port = %d, want 7000", cfg.Port)
	}
	if !cfg.DevMode {
		t.Error("dev mode = false, want true")
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("store = %q, want %q", cfg.Store, StoreSQLite)
	}
	if cfg.Seed {
		t.Error("seed = true, want false")
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsEmptyOrigins(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  string
	}{
		{"empty yaml list", "allowed_origins: []\n", ""},
		{"separators only in env", "", ","},
		{"blank entries in env", "", " , ,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("THREADS_ALLOWED_ORIGINS", tt.env)

			path := ""
			if tt.yaml != "" {
				path = filepath.Join(t.TempDir(), "threads.yaml")
				if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
					t.Fatalf("write: %v", err)
				}
			}

			if _, err := Load(path); err == nil {
				t.Fatal("expected error for empty allowed origins")
			}
		})
	}
}

func TestLoadInvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "abc")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric PORT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"unknown store", func(c *Config) { c.Store = "redis" }, true},
		{"zero default limit", func(c *Config) { c.DefaultLimit = 0 }, true},
		{"max below default", func(c *Config) { c.DefaultLimit = 20; c.MaxLimit = 10 }, true},
		{"bad origin", func(c *Config) { c.AllowedOrigins = []string{"not a url"} }, true},
		{"no origins", func(c *Config) { c.AllowedOrigins = nil }, true},
		{"empty origins", func(c *Config) { c.AllowedOrigins = []string{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
