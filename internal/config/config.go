// Package config loads and saves the YAML application configuration from the
// user config directory, filling gaps with defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// Appearance: "dark" or "light".
	Theme string `yaml:"theme"`

	// DataDir overrides where the document and its plaintext backup live.
	// Empty means the default user data directory.
	DataDir string `yaml:"data_dir"`

	Editor EditorConfig `yaml:"editor"`

	// Keybindings maps action names to key descriptions.
	Keybindings map[string]string `yaml:"keybindings"`
}

// EditorConfig holds editing and autosave settings.
type EditorConfig struct {
	AutoSave        bool `yaml:"auto_save"`
	AutoSaveDelayMs int  `yaml:"auto_save_delay_ms"`
	TabSize         int  `yaml:"tab_size"`
	UseSpaces       bool `yaml:"use_spaces"`
	SidebarWidth    int  `yaml:"sidebar_width"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme:   "dark",
		DataDir: "",

		Editor: EditorConfig{
			AutoSave:        true,
			AutoSaveDelayMs: 1500,
			TabSize:         4,
			UseSpaces:       true,
			SidebarWidth:    32,
		},

		Keybindings: map[string]string{
			"quit":           "ctrl+q",
			"help":           "f1",
			"save":           "ctrl+s",
			"assign_tag":     "ctrl+g",
			"new_tag":        "ctrl+t",
			"toggle_sidebar": "ctrl+o",
			"focus_sidebar":  "tab",
		},
	}
}

// Load reads the config file, creating it with defaults on first run. Errors
// still return a usable default config.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return cfg, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cfg.Save(configPath); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	defaults := DefaultConfig()
	cfg.applyKeybindingDefaults(defaults.Keybindings)
	cfg.normalize(defaults)

	return cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveDefault writes the config to the standard location.
func (c *Config) SaveDefault() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.Save(path)
}

// ResolveDataDir returns the directory holding the save files: the
// configured override, or $XDG_DATA_HOME/buffmon (~/.local/share/buffmon).
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "buffmon"), nil
}

func (c *Config) applyKeybindingDefaults(defaults map[string]string) {
	if c.Keybindings == nil {
		c.Keybindings = make(map[string]string, len(defaults))
	}
	for key, value := range defaults {
		current, ok := c.Keybindings[key]
		if !ok || strings.TrimSpace(current) == "" {
			c.Keybindings[key] = value
		}
	}
}

func (c *Config) normalize(defaults *Config) {
	if c.Theme != "dark" && c.Theme != "light" {
		c.Theme = defaults.Theme
	}
	if c.Editor.AutoSaveDelayMs <= 0 {
		c.Editor.AutoSaveDelayMs = defaults.Editor.AutoSaveDelayMs
	}
	if c.Editor.TabSize <= 0 {
		c.Editor.TabSize = defaults.Editor.TabSize
	}
	if c.Editor.SidebarWidth < 20 {
		c.Editor.SidebarWidth = defaults.Editor.SidebarWidth
	}
}

// getConfigPath returns the config file location under XDG_CONFIG_HOME.
func getConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "buffmon", "config.yaml"), nil
}
