package action

import (
	"errors"
	"fmt"

	"facette.io/natsort"

	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/storage"
)

var (
	// ErrNoRegistryName is returned for actions that cannot be registered.
	ErrNoRegistryName = errors.New("action has no registry name")
	// ErrNotUserAdded is returned when removing a built-in action.
	ErrNotUserAdded = errors.New("action is not user-added")
	// ErrNotFound is returned when a registry name does not resolve.
	ErrNotFound = errors.New("action not found")
)

// Registry maps registry names to top-level named actions.
//
// A Registry is owned by the application's composition root and handed to
// every component that registers or resolves actions. It is used from a
// single goroutine and does no locking.
type Registry struct {
	actions     map[string]NamedAction
	storagePath string
	events      *event.Manager
}

// NewRegistry creates an empty registry persisting user-added actions to
// storagePath. An empty path disables persistence.
func NewRegistry(storagePath string) *Registry {
	return &Registry{
		actions:     make(map[string]NamedAction),
		storagePath: storagePath,
	}
}

// SetEventManager attaches an event bus for registry notifications.
func (r *Registry) SetEventManager(m *event.Manager) {
	r.events = m
}

// StoragePath returns the file user-added actions are saved to.
func (r *Registry) StoragePath() string {
	return r.storagePath
}

// Register adds a under its registry name. A later registration under the
// same name replaces the earlier one.
func (r *Registry) Register(a NamedAction) error {
	name := a.RegistryName()
	if name == "" {
		logger.WarnTagf("action", "Registry: refusing to register '%s' (%s): no registry name", a.Name(), a.Type())
		return fmt.Errorf("register '%s': %w", a.Name(), ErrNoRegistryName)
	}
	if _, exists := r.actions[name]; exists {
		logger.DebugTagf("action", "Registry: replacing action '%s'", name)
	}
	r.actions[name] = a
	r.events.Dispatch(event.TypeActionRegistered, event.ActionData{RegistryName: name})
	return nil
}

// Get returns the action registered under name, or nil.
func (r *Registry) Get(name string) NamedAction {
	return r.actions[name]
}

// Remove unregisters a user-added action.
func (r *Registry) Remove(name string) error {
	a, ok := r.actions[name]
	if !ok {
		return fmt.Errorf("remove '%s': %w", name, ErrNotFound)
	}
	if !a.UserAdded() {
		return fmt.Errorf("remove '%s': %w", name, ErrNotUserAdded)
	}
	delete(r.actions, name)
	r.events.Dispatch(event.TypeActionRemoved, event.ActionData{RegistryName: name})
	return nil
}

// All returns every registered action ordered by registry name.
func (r *Registry) All() []NamedAction {
	return r.filter(func(NamedAction) bool { return true })
}

// BaseActions returns the built-in actions, excluding aliases and macros.
func (r *Registry) BaseActions() []NamedAction {
	return r.filter(func(a NamedAction) bool { return !a.UserAdded() })
}

// UserAdded returns the actions created by user configuration.
func (r *Registry) UserAdded() []NamedAction {
	return r.filter(NamedAction.UserAdded)
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}

func (r *Registry) filter(keep func(NamedAction) bool) []NamedAction {
	names := make([]string, 0, len(r.actions))
	for name, a := range r.actions {
		if keep(a) {
			names = append(names, name)
		}
	}
	natsort.Sort(names)

	result := make([]NamedAction, 0, len(names))
	for _, name := range names {
		result = append(result, r.actions[name])
	}
	return result
}

// SaveToFile writes all user-added actions to the storage file as a JSON
// array. Callers batch this to the end of an editing session.
func (r *Registry) SaveToFile() error {
	if r.storagePath == "" {
		return nil
	}
	userAdded := r.UserAdded()
	if err := storage.WriteJSON(r.storagePath, ActionsToJSON(userAdded)); err != nil {
		return fmt.Errorf("saving actions: %w", err)
	}
	logger.InfoTagf("action", "Registry: saved %d user actions to %s", len(userAdded), r.storagePath)
	r.events.Dispatch(event.TypeActionsSaved, event.StorageData{FilePath: r.storagePath, Count: len(userAdded)})
	return nil
}

// LoadFromFile reads user-added actions from the storage file and registers
// them. A missing file is not an error.
func (r *Registry) LoadFromFile() error {
	if r.storagePath == "" {
		return nil
	}
	objects, err := storage.ReadArray(r.storagePath)
	if err != nil {
		return fmt.Errorf("loading actions: %w", err)
	}

	count := r.RegisterFromJSON(objects)
	logger.InfoTagf("action", "Registry: loaded %d user actions from %s", count, r.storagePath)
	r.events.Dispatch(event.TypeActionsLoaded, event.StorageData{FilePath: r.storagePath, Count: count})
	return nil
}

// RegisterFromJSON loads top-level user actions and registers them,
// returning how many were registered. Macros are registered empty before
// anything else is read, so aliases of macros and macros nested in other
// macros resolve to the registered instances instead of private copies.
// Members are then added one by one; a member that would form a loop is
// dropped.
func (r *Registry) RegisterFromJSON(objects []JSONObject) int {
	type pendingMacro struct {
		macro   *Macro
		members []JSONObject
	}
	var macros []pendingMacro
	var others []JSONObject
	for _, obj := range objects {
		name, members, ok := macroObject(obj)
		if !ok {
			others = append(others, obj)
			continue
		}
		m, ok := r.Get(RegistryNameFor(MacroModInfo, name)).(*Macro)
		if !ok {
			m = NewMacro(name)
		}
		macros = append(macros, pendingMacro{macro: m, members: members})
	}

	count := 0
	for _, p := range macros {
		if err := r.Register(p.macro); err != nil {
			logger.WarnTagf("action", "Registry: %v", err)
			continue
		}
		count++
	}

	loader := NewLoader(r)
	for _, obj := range others {
		a := loader.LoadAction(obj)
		if a == nil {
			logger.WarnTagf("action", "Registry: skipping unreadable entry %v", obj)
			continue
		}
		if !a.UserAdded() {
			continue
		}
		if err := r.Register(a); err != nil {
			logger.WarnTagf("action", "Registry: %v", err)
			continue
		}
		count++
	}

	for _, p := range macros {
		_ = p.macro.SetActions(nil)
		for _, member := range loader.LoadActions(p.members) {
			if err := p.macro.AddActions(member); err != nil {
				logger.WarnTagf("action", "Registry: dropping '%s' from macro '%s': %v", member.Name(), p.macro.Name(), err)
			}
		}
	}
	return count
}

// macroObject reports whether obj is a stored macro and returns its name
// and member objects.
func macroObject(obj JSONObject) (string, []JSONObject, bool) {
	if typeID, hasType := getString(obj, "type"); hasType {
		if ParseType(typeID) != TypeMacro {
			return "", nil, false
		}
	} else if _, isAlias := obj["alias"]; isAlias {
		return "", nil, false
	}
	name, hasName := getString(obj, "name")
	members, hasActions := getObjects(obj, "actions")
	if !hasName || !hasActions {
		return "", nil, false
	}
	return name, members, true
}
