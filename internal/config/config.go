// Package config reads and writes the unbudget configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBudgetURL is the published budget dataset for report A/80/400.
const DefaultBudgetURL = "https://un-budget-explorer.org/budget.json"

// DefaultDetailsURL is the matching narrative dataset.
const DefaultDetailsURL = "https://un-budget-explorer.org/details.json"

// Config holds all unbudget configuration.
type Config struct {
	Data       DataConfig       `toml:"data"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// DataConfig points at the budget and narrative datasets. Either field may be
// a local file path or an http(s) URL.
type DataConfig struct {
	Budget  string `toml:"budget"`
	Details string `toml:"details"`
}

// AppearanceConfig holds theme and layout preferences.
type AppearanceConfig struct {
	Theme   string `toml:"theme"`
	Compact bool   `toml:"compact"` // prefer row-packing layout
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Listen string `toml:"listen"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Budget:  DefaultBudgetURL,
			Details: DefaultDetailsURL,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8093",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "unbudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "unbudget")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Exists reports whether a config file has been written yet.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
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
