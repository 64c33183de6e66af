package action

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrMacroLoop is returned when adding actions would make a macro reach itself.
var ErrMacroLoop = errors.New("macro would contain itself")

// ImportMode selects how imported actions combine with a macro's members.
type ImportMode int

const (
	ImportAppend ImportMode = iota
	ImportOverwrite
)

// Macro executes an ordered list of actions in sequence.
//
// The macro owns its member list: accessors return copies and every
// mutation replaces the list, so no two macros (or a macro and an editor's
// staging list) ever share backing storage. Every path that adds members
// runs ContainsMacroLoop first.
type Macro struct {
	base
	actions []NamedAction
}

// NewMacro creates a user-added macro registered as "<macro>:<name>".
// A new macro is not reachable from anything yet, so no loop check is needed.
func NewMacro(name string, actions ...NamedAction) *Macro {
	return &Macro{
		base: base{
			typ:          TypeMacro,
			name:         name,
			registryName: RegistryNameFor(MacroModInfo, name),
			mod:          MacroModInfo,
		},
		actions: slices.Clone(actions),
	}
}

func (m *Macro) UserAdded() bool { return true }

// SetName renames the macro; the registry name follows on the next load.
func (m *Macro) SetName(name string) { m.name = name }

// Actions returns a copy of the member list.
func (m *Macro) Actions() []NamedAction {
	return slices.Clone(m.actions)
}

// Len returns the number of members.
func (m *Macro) Len() int { return len(m.actions) }

// SetActions replaces the member list.
func (m *Macro) SetActions(actions []NamedAction) error {
	if ContainsMacroLoop(m, actions) {
		return fmt.Errorf("set actions of %q: %w", m.name, ErrMacroLoop)
	}
	m.actions = slices.Clone(actions)
	return nil
}

// AddActions appends members.
func (m *Macro) AddActions(actions ...NamedAction) error {
	return m.InsertActions(len(m.actions), actions...)
}

// InsertActions inserts members before index; an out-of-range index appends.
func (m *Macro) InsertActions(index int, actions ...NamedAction) error {
	if ContainsMacroLoop(m, actions) {
		return fmt.Errorf("add actions to %q: %w", m.name, ErrMacroLoop)
	}
	if index < 0 || index > len(m.actions) {
		index = len(m.actions)
	}
	m.actions = slices.Insert(slices.Clone(m.actions), index, actions...)
	return nil
}

// ReplaceAt swaps the member at index, e.g. with a re-parameterized copy.
// It returns false for an out-of-range index.
func (m *Macro) ReplaceAt(index int, a NamedAction) (bool, error) {
	if index < 0 || index >= len(m.actions) {
		return false, nil
	}
	if ContainsMacroLoop(m, []NamedAction{a}) {
		return false, fmt.Errorf("replace action in %q: %w", m.name, ErrMacroLoop)
	}
	actions := slices.Clone(m.actions)
	actions[index] = a
	m.actions = actions
	return true, nil
}

// RemoveAt removes the members at the given indices, ignoring invalid ones.
func (m *Macro) RemoveAt(indices ...int) {
	sorted := slices.Clone(indices)
	// reverse order so removals don't shift the remaining indices
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	actions := slices.Clone(m.actions)
	last := -1
	for _, index := range sorted {
		if index == last || index < 0 || index >= len(actions) {
			continue
		}
		actions = slices.Delete(actions, index, index+1)
		last = index
	}
	m.actions = actions
}

// Import adds actions in append or overwrite mode and returns how many were
// imported. On a loop nothing changes.
func (m *Macro) Import(actions []NamedAction, mode ImportMode) (int, error) {
	if ContainsMacroLoop(m, actions) {
		return 0, fmt.Errorf("import into %q: %w", m.name, ErrMacroLoop)
	}
	if mode == ImportOverwrite {
		m.actions = slices.Clone(actions)
	} else {
		m.actions = append(slices.Clone(m.actions), actions...)
	}
	return len(actions), nil
}

// Execute runs every member in order regardless of their results and
// reports SUCCESS once all of them ran.
func (m *Macro) Execute(ctx Context) Result {
	for _, a := range m.actions {
		a.Execute(ctx)
	}
	return ResultSuccess
}

func (m *Macro) ToJSON() JSONObject {
	obj := m.baseJSON()
	obj["name"] = m.name
	obj["actions"] = ActionsToJSON(m.actions)
	return obj
}

// ActionsToJSON converts an ordered action list to its JSON array form.
func ActionsToJSON(actions []NamedAction) []any {
	arr := make([]any, 0, len(actions))
	for _, a := range actions {
		arr = append(arr, a.ToJSON())
	}
	return arr
}

// ContainsMacroLoop reports whether adding candidates to macro would let the
// macro reach itself: a candidate is the macro, or a candidate macro (or an
// alias of one) contains it at any depth.
func ContainsMacroLoop(macro *Macro, candidates []NamedAction) bool {
	for _, a := range candidates {
		if reaches(a, macro) {
			return true
		}
	}
	return false
}

func reaches(a NamedAction, target *Macro) bool {
	switch v := a.(type) {
	case *Macro:
		if v == target {
			return true
		}
		for _, member := range v.actions {
			if reaches(member, target) {
				return true
			}
		}
	case *Alias:
		return reaches(v.target, target)
	}
	return false
}
