package hotkey

import (
	"fmt"

	"facette.io/natsort"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/storage"
)

// HotkeyContext is the execution context for key presses.
var HotkeyContext = action.Context{Source: "hotkey"}

// Manager owns the custom hotkeys and the hotkeyed booleans and dispatches
// key events to them.
type Manager struct {
	hotkeys     map[string]*CustomHotkey
	booleans    []*HotkeyedBoolean
	registry    *action.Registry
	storagePath string
	events      *event.Manager
}

// NewManager creates a manager resolving hotkey actions against registry
// and persisting custom hotkeys to storagePath (empty disables it).
func NewManager(registry *action.Registry, storagePath string) *Manager {
	return &Manager{
		hotkeys:     make(map[string]*CustomHotkey),
		registry:    registry,
		storagePath: storagePath,
	}
}

// SetEventManager attaches an event bus for execution and storage events.
func (m *Manager) SetEventManager(e *event.Manager) {
	m.events = e
}

// Add stores h, replacing any hotkey with the same name.
func (m *Manager) Add(h *CustomHotkey) {
	m.hotkeys[h.Name] = h
}

// Remove deletes the named hotkey, reporting whether it existed.
func (m *Manager) Remove(name string) bool {
	if _, ok := m.hotkeys[name]; !ok {
		return false
	}
	delete(m.hotkeys, name)
	return true
}

// Get returns the named hotkey or nil.
func (m *Manager) Get(name string) *CustomHotkey {
	return m.hotkeys[name]
}

// Hotkeys returns the custom hotkeys ordered by name.
func (m *Manager) Hotkeys() []*CustomHotkey {
	names := make([]string, 0, len(m.hotkeys))
	for name := range m.hotkeys {
		names = append(names, name)
	}
	natsort.Sort(names)

	list := make([]*CustomHotkey, 0, len(names))
	for _, name := range names {
		list = append(list, m.hotkeys[name])
	}
	return list
}

// AddBoolean binds a hotkeyed boolean option.
func (m *Manager) AddBoolean(b *HotkeyedBoolean) {
	m.booleans = append(m.booleans, b)
}

// Booleans returns the bound boolean options.
func (m *Manager) Booleans() []*HotkeyedBoolean {
	return append([]*HotkeyedBoolean(nil), m.booleans...)
}

// Handle runs everything bound to ev and reports whether anything matched.
func (m *Manager) Handle(ev *tcell.EventKey) bool {
	handled := false
	for _, h := range m.Hotkeys() {
		if !h.KeyBind.Matches(ev) {
			continue
		}
		logger.DebugTagf("hotkey", "Hotkey '%s' (%s) pressed", h.Name, h.KeyBind)
		result := h.Execute(HotkeyContext)
		m.events.Dispatch(event.TypeActionExecuted, event.ExecutedData{
			RegistryName: h.Name,
			Source:       HotkeyContext.Source,
			Result:       result.String(),
		})
		handled = true
	}
	for _, b := range m.booleans {
		if !b.KeyBind.Matches(ev) {
			continue
		}
		logger.DebugTagf("hotkey", "Toggle hotkey for '%s' (%s) pressed", b.Name(), b.KeyBind)
		result := b.ToggleAction()(HotkeyContext)
		m.events.Dispatch(event.TypeActionExecuted, event.ExecutedData{
			RegistryName: b.Name(),
			Source:       HotkeyContext.Source,
			Result:       result.String(),
		})
		handled = true
	}
	return handled
}

// SaveToFile writes the custom hotkeys to the storage file.
func (m *Manager) SaveToFile() error {
	if m.storagePath == "" {
		return nil
	}
	hotkeys := m.Hotkeys()
	arr := make([]any, 0, len(hotkeys))
	for _, h := range hotkeys {
		arr = append(arr, h.ToJSON())
	}
	if err := storage.WriteJSON(m.storagePath, arr); err != nil {
		return fmt.Errorf("saving hotkeys: %w", err)
	}
	logger.InfoTagf("hotkey", "Saved %d hotkeys to %s", len(hotkeys), m.storagePath)
	m.events.Dispatch(event.TypeHotkeysSaved, event.StorageData{FilePath: m.storagePath, Count: len(hotkeys)})
	return nil
}

// LoadFromFile replaces the custom hotkeys with those in the storage file.
// Actions are resolved against the registry at load time, so load the
// registry's own actions first.
func (m *Manager) LoadFromFile() error {
	if m.storagePath == "" {
		return nil
	}
	objects, err := storage.ReadArray(m.storagePath)
	if err != nil {
		return fmt.Errorf("loading hotkeys: %w", err)
	}

	loader := action.NewLoader(m.registry)
	m.hotkeys = make(map[string]*CustomHotkey)
	for _, obj := range objects {
		h, err := CustomHotkeyFromJSON(obj, loader)
		if err != nil {
			logger.WarnTagf("hotkey", "Skipping hotkey in %s: %v", m.storagePath, err)
			continue
		}
		m.Add(h)
	}
	logger.InfoTagf("hotkey", "Loaded %d hotkeys from %s", len(m.hotkeys), m.storagePath)
	m.events.Dispatch(event.TypeHotkeysLoaded, event.StorageData{FilePath: m.storagePath, Count: len(m.hotkeys)})
	return nil
}
