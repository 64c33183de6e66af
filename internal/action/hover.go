package action

import (
	"fmt"
)

// maxHoverMembers is how many macro members the hover text lists.
const maxHoverMembers = 8

// WidgetDisplayName is the one-line label used in action listings.
func WidgetDisplayName(a NamedAction) string {
	switch v := a.(type) {
	case *Alias:
		return fmt.Sprintf("%s (alias of %s: %s)", v.Name(), v.target.ModInfo().Name, v.target.Name())
	case *Macro:
		return fmt.Sprintf("%s (macro, %d actions)", v.Name(), len(v.actions))
	case *Parameterized:
		return fmt.Sprintf("%s [%s]", v.Name(), v.arg)
	case *Unavailable:
		return fmt.Sprintf("%s (%s)", v.Name(), v.RegistryName())
	default:
		return a.DisplayName()
	}
}

// HoverInfo returns the help lines describing a.
func HoverInfo(a NamedAction) []string {
	var lines []string

	switch v := a.(type) {
	case *Alias:
		lines = append(lines, "Alias: "+v.Name())
		if display := v.target.DisplayName(); display != v.Name() {
			lines = append(lines, "Display name: "+display)
		}
		lines = appendRegistryName(lines, v)
		lines = append(lines,
			"Type: "+v.Type().String(),
			"Base action mod: "+v.target.ModInfo().Name,
			"Base action name: "+v.target.Name(),
		)
		if parent := v.target.RegistryName(); parent != "" {
			lines = append(lines, "Base action registry name: "+parent)
		}

	case *Macro:
		lines = append(lines, "Name: "+v.Name())
		lines = appendRegistryName(lines, v)
		lines = append(lines, "Type: "+v.Type().String())
		lines = ContainedActionsInfo(lines, v.actions, maxHoverMembers)

	case *Parameterized:
		lines = append(lines, "Name: "+v.Name())
		lines = append(lines,
			"Type: "+v.Type().String(),
			"Action: "+v.parent.RegistryName(),
			"Argument: "+v.arg,
		)

	case *Unavailable:
		lines = append(lines,
			"Not available: "+v.RegistryName(),
			"The module providing this action is not loaded",
		)

	case *Simple, *Parameterizable:
		lines = append(lines, "Name: "+v.Name())
		if display := v.DisplayName(); display != v.Name() {
			lines = append(lines, "Display name: "+display)
		}
		lines = appendRegistryName(lines, v)
		lines = append(lines,
			"Type: "+v.Type().String(),
			"Mod: "+v.ModInfo().Name,
		)
	}

	if comment := a.Comment(); comment != "" {
		lines = append(lines, comment)
	}
	return lines
}

func appendRegistryName(lines []string, a NamedAction) []string {
	if name := a.RegistryName(); name != "" {
		lines = append(lines, "Registry name: "+name)
	}
	return lines
}

// ContainedActionsInfo lists up to maxShown member names. When only one entry
// would be hidden it is shown instead of a "more" line.
func ContainedActionsInfo(lines []string, actions []NamedAction, maxShown int) []string {
	size := len(actions)
	if size == 0 {
		return lines
	}

	count := min(size, maxShown)
	if maxShown == size-1 {
		count = size
	}

	lines = append(lines, fmt.Sprintf("Contains %d actions:", size))
	for _, a := range actions[:count] {
		lines = append(lines, "  - "+a.Name())
	}
	if size > count {
		lines = append(lines, fmt.Sprintf("  ... and %d more", size-count))
	}
	return lines
}
