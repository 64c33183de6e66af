// internal/config/flags.go
package config

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags. Only flags the user
// actually set override the config file.
type Flags struct {
	set *pflag.FlagSet

	ConfigFilePath  string
	Version         bool
	LogLevel        string
	LogFilePath     string
	EnableTags      []string
	DisableTags     []string
	EnablePkgs      []string
	DisablePkgs     []string
	EnableFiles     []string
	DisableFiles    []string
	StorageFile     string
	HotkeysFile     string
	HotbarWidth     int
	SystemClipboard bool
	// OptionValues are name=value option overrides.
	OptionValues map[string]string
}

// NewFlags defines the command-line flags on a fresh flag set.
func NewFlags(name string) *Flags {
	f := &Flags{set: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	s := f.set
	s.StringVarP(&f.ConfigFilePath, "config", "c", "", fmt.Sprintf("Path to TOML configuration file (default <user config dir>/%s/%s)", AppName, DefaultConfigFileName))
	s.BoolVar(&f.Version, "version", false, "Show version information and exit")
	s.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	s.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	s.StringSliceVar(&f.EnableTags, "log-tags", nil, "Tags to enable - Overrides config file")
	s.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Tags to disable - Overrides config file")
	s.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Packages to enable - Overrides config file")
	s.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Packages to disable - Overrides config file")
	s.StringSliceVar(&f.EnableFiles, "log-files", nil, "Files to enable - Overrides config file")
	s.StringSliceVar(&f.DisableFiles, "log-disable-files", nil, "Files to disable - Overrides config file")
	s.StringVar(&f.StorageFile, "actions-file", "", "Path of the user actions file - Overrides config file")
	s.StringVar(&f.HotkeysFile, "hotkeys-file", "", "Path of the custom hotkeys file - Overrides config file")
	s.IntVar(&f.HotbarWidth, "hotbar-width", 0, "Width messages are clamped to - Overrides config file")
	s.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "Use the system clipboard")
	s.StringToStringVarP(&f.OptionValues, "set", "s", nil, "Option overrides as name=value")
	return f
}

// SetOutput redirects usage and error output.
func (f *Flags) SetOutput(w io.Writer) {
	f.set.SetOutput(w)
}

// Parse parses args and returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f.set.Args(), nil
}

// Usage prints the flag defaults.
func (f *Flags) Usage() string {
	return f.set.FlagUsages()
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	// Visit only processes flags that were actually set
	f.set.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "log-packages":
			cfg.Logger.EnabledPackages = f.EnablePkgs
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = f.DisablePkgs
		case "log-files":
			cfg.Logger.EnabledFiles = f.EnableFiles
		case "log-disable-files":
			cfg.Logger.DisabledFiles = f.DisableFiles
		case "actions-file":
			cfg.Actions.StorageFile = f.StorageFile
		case "hotkeys-file":
			cfg.Actions.HotkeysFile = f.HotkeysFile
		case "hotbar-width":
			if f.HotbarWidth > 0 {
				cfg.Actions.HotbarWidth = f.HotbarWidth
			}
		case "system-clipboard":
			cfg.Actions.SystemClipboard = f.SystemClipboard
		}
	})
}
