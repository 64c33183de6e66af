package config

// Base application details
const AppName = "tide-actions"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tide-actions.log"

// Storage files, relative to the config directory
const DefaultActionsFileName = "actions.json"
const DefaultHotkeysFileName = "hotkeys.json"

// Message layout
const DefaultHotbarWidth = 310
const SystemClipboard = true
