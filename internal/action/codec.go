package action

import (
	"fmt"

	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/storage"
)

// Loader turns persisted JSON back into named actions, resolving registry
// names against a Registry. Resolution happens on every load and is never
// cached, so references heal once their target is registered again.
type Loader struct {
	registry *Registry
}

// NewLoader creates a loader resolving against r.
func NewLoader(r *Registry) *Loader {
	return &Loader{registry: r}
}

// LoadAction converts one JSON object to an action, or nil if it can't be
// read. The "type" field selects the variant; without it the variant
// loaders are tried in a fixed order.
func (l *Loader) LoadAction(obj JSONObject) NamedAction {
	typeID, hasType := getString(obj, "type")
	if !hasType {
		return l.loadUntyped(obj)
	}

	switch t := ParseType(typeID); t {
	case TypeAlias:
		if alias := l.AliasFromJSON(obj); alias != nil {
			return alias
		}
	case TypeMacro:
		if macro := l.MacroFromJSON(obj); macro != nil {
			return macro
		}
	case TypeParameterized:
		if p := l.ParameterizedFromJSON(obj); p != nil {
			return p
		}
	case TypeUnavailable:
		return l.UnavailableFromJSON(obj)
	case TypeSimple, TypeParameterizable:
		return l.registeredOfType(obj, t)
	default:
		logger.DebugTagf("action", "Loader: unknown action type '%s'", typeID)
	}
	return nil
}

// loadUntyped tries alias, macro, parameterized, then a plain registry lookup.
func (l *Loader) loadUntyped(obj JSONObject) NamedAction {
	if a := l.AliasFromJSON(obj); a != nil {
		return a
	}
	if m := l.MacroFromJSON(obj); m != nil {
		return m
	}
	if p := l.ParameterizedFromJSON(obj); p != nil {
		return p
	}
	return l.baseActionFromJSON(obj)
}

// LoadActions loads each object in order, skipping those that fail.
func (l *Loader) LoadActions(objects []JSONObject) []NamedAction {
	actions := make([]NamedAction, 0, len(objects))
	for _, obj := range objects {
		if a := l.LoadAction(obj); a != nil {
			actions = append(actions, a)
		} else {
			logger.DebugTagf("action", "Loader: skipping unreadable action %v", obj)
		}
	}
	return actions
}

// ReadActions parses a JSON (or JSONC) array, e.g. a clipboard export.
func (l *Loader) ReadActions(data []byte) ([]NamedAction, error) {
	objects, err := storage.ParseArray(data)
	if err != nil {
		return nil, fmt.Errorf("reading actions: %w", err)
	}
	return l.LoadActions(objects), nil
}

// AliasFromJSON reads an alias. An object whose "name" already resolves to a
// registered alias yields that instance. An unresolved "parent" is replaced
// by an Unavailable placeholder so the alias is kept.
func (l *Loader) AliasFromJSON(obj JSONObject) *Alias {
	if alias, ok := l.baseActionFromJSON(obj).(*Alias); ok {
		return alias
	}

	parent, hasParent := getString(obj, "parent")
	name, hasName := getString(obj, "alias")
	if !hasParent || !hasName {
		return nil
	}

	target := l.registry.Get(parent)
	if target == nil {
		logger.DebugTagf("action", "Loader: alias '%s' parent '%s' not available", name, parent)
		target = NewUnavailable(parent)
	}
	return NewAlias(name, target)
}

// MacroFromJSON reads a macro. An object naming an already registered macro
// yields that instance; otherwise members are loaded recursively and those
// that fail are dropped.
func (l *Loader) MacroFromJSON(obj JSONObject) *Macro {
	if macro, ok := l.baseActionFromJSON(obj).(*Macro); ok {
		return macro
	}

	name, hasName := getString(obj, "name")
	members, hasActions := getObjects(obj, "actions")
	if !hasName || !hasActions {
		return nil
	}
	return NewMacro(name, l.LoadActions(members)...)
}

// ParameterizedFromJSON reads a parameterized action. The parameterizable
// action named by "name" must be registered.
func (l *Loader) ParameterizedFromJSON(obj JSONObject) *Parameterized {
	parentName, hasName := getString(obj, "name")
	arg, hasArg := getString(obj, "arg")
	if !hasName || !hasArg {
		return nil
	}

	parent, ok := l.registry.Get(parentName).(*Parameterizable)
	if !ok {
		logger.DebugTagf("action", "Loader: parameterizable action '%s' not available", parentName)
		return nil
	}
	displayName, _ := getString(obj, "display_name")
	return parent.Parameterize(displayName, arg)
}

// UnavailableFromJSON resolves a previously unavailable reference again.
func (l *Loader) UnavailableFromJSON(obj JSONObject) NamedAction {
	name, ok := getString(obj, "name")
	if !ok {
		return nil
	}
	if a := l.registry.Get(name); a != nil {
		return a
	}
	return NewUnavailable(name)
}

// baseActionFromJSON resolves "name" in the registry; for macros, which write
// their plain name, the derived "<macro>:<name>" key is tried as well.
func (l *Loader) baseActionFromJSON(obj JSONObject) NamedAction {
	name, ok := getString(obj, "name")
	if !ok {
		return nil
	}
	if a := l.registry.Get(name); a != nil {
		return a
	}
	if typeID, _ := getString(obj, "type"); ParseType(typeID) == TypeMacro {
		return l.registry.Get(RegistryNameFor(MacroModInfo, name))
	}
	return nil
}

// registeredOfType resolves a built-in action and checks its variant.
func (l *Loader) registeredOfType(obj JSONObject, t Type) NamedAction {
	a := l.baseActionFromJSON(obj)
	if a == nil {
		return nil
	}
	if a.Type() != t {
		logger.DebugTagf("action", "Loader: '%s' is a %s action, expected %s", a.RegistryName(), a.Type(), t)
		return nil
	}
	return a
}

func getString(obj JSONObject, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok
}

// getObjects returns the object elements of an array field. A present but
// empty array reports true.
func getObjects(obj JSONObject, key string) ([]JSONObject, bool) {
	arr, ok := obj[key].([]any)
	if !ok {
		return nil, false
	}
	objects := make([]JSONObject, 0, len(arr))
	for _, el := range arr {
		if o, ok := el.(map[string]any); ok {
			objects = append(objects, o)
		}
	}
	return objects, true
}
