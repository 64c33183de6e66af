// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Registry events
	TypeActionRegistered // A named action was registered (or replaced)
	TypeActionRemoved    // A user-added action was removed
	TypeActionsLoaded    // The action storage file was read
	TypeActionsSaved     // The action storage file was written

	// Execution events
	TypeActionExecuted // A named action ran from a hotkey or command

	// Hotkey events
	TypeHotkeysLoaded
	TypeHotkeysSaved
)

func (t Type) String() string {
	switch t {
	case TypeActionRegistered:
		return "action_registered"
	case TypeActionRemoved:
		return "action_removed"
	case TypeActionsLoaded:
		return "actions_loaded"
	case TypeActionsSaved:
		return "actions_saved"
	case TypeActionExecuted:
		return "action_executed"
	case TypeHotkeysLoaded:
		return "hotkeys_loaded"
	case TypeHotkeysSaved:
		return "hotkeys_saved"
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// ActionData identifies the action an event refers to.
type ActionData struct {
	RegistryName string
}

// StorageData describes a load or save of a storage file.
type StorageData struct {
	FilePath string
	Count    int
}

// ExecutedData carries the outcome of an execution.
type ExecutedData struct {
	RegistryName string
	Source       string
	Result       string
}
