// cmd/tide-actions/main.go
package main

import (
	"errors"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bethropolis/tide-actions/internal/app"
	"github.com/bethropolis/tide-actions/internal/config"
	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/tui"
)

// version is set at build time with -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(config.AppName)
	flags.SetOutput(os.Stderr)
	rest, err := flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\nUsage: %s [flags] <command> [args...]\n%s", err, config.AppName, flags.Usage())
		return 2
	}
	if flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}

	// --- Configuration ---
	cfg, err := config.Load(flags.ConfigFilePath, flags)
	if err != nil {
		// defaults and flags still apply
		stlog.Printf("Warning: %v", err)
	}

	// --- Logger Initialization ---
	logOutput, closeLog, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("%v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	if keys := cfg.UndecodedKeys(); len(keys) > 0 {
		logger.Warnf("Config: unknown keys in %s: %s", cfg.Path(), strings.Join(keys, ", "))
	}
	logger.Debugf("Actions file: %s", cfg.Actions.StorageFile)
	logger.Debugf("Hotkeys file: %s", cfg.Actions.HotkeysFile)

	// --- Create and Run App ---
	a, err := app.New(cfg, os.Stdout, os.Stdin)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer a.Close()

	if err := a.ApplyOptionOverrides(flags.OptionValues); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if len(rest) > 0 && rest[0] == "watch" {
		ui, err := tui.New()
		if err != nil {
			logger.Errorf("Error initializing terminal: %v", err)
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := a.Watch(ui); err != nil {
			logger.Errorf("Watch exited with error: %v", err)
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if err := a.Execute(rest); err != nil {
		logger.Debugf("Command failed: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
