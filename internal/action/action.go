// Package action implements named actions: executable units of behaviour
// that can be registered by name, aliased, parameterized, composed into
// macros and persisted as JSON.
package action

import (
	"strings"
)

// Result is the tri-state outcome of an action execution.
type Result int

const (
	ResultSuccess Result = iota
	ResultFail
	ResultPass // not applicable, continue
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "SUCCESS"
	case ResultFail:
		return "FAIL"
	case ResultPass:
		return "PASS"
	}
	return "UNKNOWN"
}

// Context is the execution-time value passed to every action invocation.
// It lives for one execution call and carries no persisted state.
type Context struct {
	// Source names what triggered the execution ("common", "hotkey", "cli").
	Source string
}

// CommonContext is the default context for executions with no specific origin.
var CommonContext = Context{Source: "common"}

// Action is a zero-argument unit of behaviour.
type Action func(ctx Context) Result

// ParameterizedAction is a unit of behaviour taking one string argument.
type ParameterizedAction func(ctx Context, arg string) Result

// ModInfo describes the module owning an action.
type ModInfo struct {
	ID   string
	Name string
}

var (
	// AliasModInfo groups all aliases in listings.
	AliasModInfo = ModInfo{ID: "<alias>", Name: "Alias"}
	// MacroModInfo groups all macros in listings.
	MacroModInfo = ModInfo{ID: "<macro>", Name: "Macro"}
	// UnavailableModInfo owns placeholders for references that did not resolve.
	UnavailableModInfo = ModInfo{ID: "<N/A>", Name: "Not available"}
)

// RegistryNameFor builds the default registry name "<modid>:<name>".
func RegistryNameFor(mod ModInfo, name string) string {
	return mod.ID + ":" + name
}

// Type tags the NamedAction variant. Its string form is the JSON "type" field.
type Type int

const (
	TypeUnknown Type = iota
	TypeSimple
	TypeParameterizable
	TypeParameterized
	TypeAlias
	TypeMacro
	TypeUnavailable
)

var typeNames = map[Type]string{
	TypeSimple:          "simple",
	TypeParameterizable: "parameterizable",
	TypeParameterized:   "parameterized",
	TypeAlias:           "alias",
	TypeMacro:           "macro",
	TypeUnavailable:     "unavailable",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType maps a JSON type id back to a Type; unknown ids yield TypeUnknown.
func ParseType(id string) Type {
	id = strings.ToLower(strings.TrimSpace(id))
	for t, name := range typeNames {
		if name == id {
			return t
		}
	}
	return TypeUnknown
}
