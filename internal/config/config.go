// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tide-actions/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config  `toml:"logger"`  // Embed logger config under [logger] table
	Actions ActionsConfig  `toml:"actions"` // Where actions and hotkeys are stored
	Options map[string]any `toml:"options"` // Option values by option name
	// Plugins holds one [plugins.<name>] table per plugin.
	Plugins map[string]map[string]any `toml:"plugins"`

	path      string
	undecoded []string
}

// ActionsConfig holds the action storage settings.
type ActionsConfig struct {
	StorageFile     string `toml:"storage_file"`
	HotkeysFile     string `toml:"hotkeys_file"`
	HotbarWidth     int    `toml:"hotbar_width"`
	SystemClipboard bool   `toml:"system_clipboard"`
}

// NewDefaultConfig creates a Config with default values. Storage files live
// next to the config file in dir; an empty dir disables persistence.
func NewDefaultConfig(dir string) *Config {
	cfg := &Config{
		Logger: logger.NewConfig(),
		Actions: ActionsConfig{
			HotbarWidth:     DefaultHotbarWidth,
			SystemClipboard: SystemClipboard,
		},
		Options: make(map[string]any),
		Plugins: make(map[string]map[string]any),
	}
	if dir != "" {
		cfg.Actions.StorageFile = filepath.Join(dir, DefaultActionsFileName)
		cfg.Actions.HotkeysFile = filepath.Join(dir, DefaultHotkeysFileName)
		cfg.path = filepath.Join(dir, DefaultConfigFileName)
	}
	return cfg
}

// DefaultDir is the per-user config directory, or "" when it can't be found.
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName)
}

// Path is the file the config was loaded from and is saved to.
func (c *Config) Path() string {
	return c.path
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// The logger isn't set up yet; callers report these.
		cfg.undecoded = append(cfg.undecoded, undecodedKeys(undecoded)...)
	}
	return nil
}

func undecodedKeys(keys []toml.Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	if c.Actions.HotbarWidth <= 0 {
		c.Actions.HotbarWidth = DefaultHotbarWidth
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = "info"
	}
	if c.Options == nil {
		c.Options = make(map[string]any)
	}
	if c.Plugins == nil {
		c.Plugins = make(map[string]map[string]any)
	}
}

// Load builds the configuration from defaults, the config file and flag
// overrides, in that order. An empty configFilePath uses the default
// location. A broken file still yields a usable default config along with
// the error.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	dir := DefaultDir()
	if configFilePath != "" {
		dir = filepath.Dir(configFilePath)
	}
	cfg := NewDefaultConfig(dir)
	if configFilePath != "" {
		cfg.path = configFilePath
	}

	var loadErr error
	if cfg.path != "" {
		loadErr = loadFromFile(cfg.path, cfg)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, loadErr
}

// UndecodedKeys lists the keys in the config file nothing consumed.
func (c *Config) UndecodedKeys() []string {
	return c.undecoded
}

// PluginValue reads key from the [plugins.<name>] table.
func (c *Config) PluginValue(pluginName, key string) (any, bool) {
	table, ok := c.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// SaveOptions stores values as the [options] table. The rest of the file is
// written back as it is on disk, so flag overrides never end up in it.
func (c *Config) SaveOptions(values map[string]any) error {
	c.Options = values
	if c.path == "" {
		return nil
	}
	stored := NewDefaultConfig(filepath.Dir(c.path))
	stored.path = c.path
	if err := loadFromFile(c.path, stored); err != nil {
		return fmt.Errorf("saving options: %w", err)
	}
	stored.validate()
	stored.Options = values
	return stored.Save()
}

// Save writes the config file atomically.
func (c *Config) Save() error {
	if c.path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	logger.InfoTagf("config", "Saved configuration to %s", c.path)
	return nil
}
