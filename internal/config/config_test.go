package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Data.Budget != DefaultBudgetURL {
		t.Errorf("budget = %q, want default URL", cfg.Data.Budget)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.Server.Listen == "" {
		t.Error("listen address unset")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true with no config written")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Data.Budget = "/tmp/budget.json"
	cfg.Appearance.Theme = "terminal"
	cfg.Appearance.Compact = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	want := filepath.Join("/xdg", "unbudget", "config.toml")
	if got := ConfigPath(); got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}
