package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds persistent lab settings stored at <profileDir>/dropdown.json.
type Config struct {
	Theme               string `json:"theme,omitempty"`
	ItemCount           int    `json:"item_count,omitempty"`
	MenuHeight          int    `json:"menu_height,omitempty"`
	HeaderKeyNavigation bool   `json:"header_key_navigation,omitempty"`
	LogFile             string `json:"log_file,omitempty"`
}

const filename = "dropdown.json"

// Path returns the config file location inside profileDir.
func Path(profileDir string) string {
	return filepath.Join(profileDir, filename)
}

// Load reads <profileDir>/dropdown.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
// Zero or negative sizes in the file fall back to their defaults.
func Load(profileDir string) Config {
	cfg := defaults()
	data, err := os.ReadFile(Path(profileDir))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}
	return cfg.normalized()
}

// Save writes cfg to <profileDir>/dropdown.json, creating the directory if
// needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(Path(profileDir), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Default returns the built-in settings. Theme is left empty so the caller
// can pick one from the terminal background.
func Default() Config { return defaults() }

func defaults() Config {
	return Config{
		ItemCount:  20,
		MenuHeight: 8,
	}
}

func (c Config) normalized() Config {
	d := defaults()
	if c.ItemCount <= 0 {
		c.ItemCount = d.ItemCount
	}
	if c.MenuHeight <= 0 {
		c.MenuHeight = d.MenuHeight
	}
	return c
}
