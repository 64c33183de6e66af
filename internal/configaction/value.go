// Package configaction turns option cells into named actions: parameterized
// setters for every cell and toggle/enable/disable actions for booleans.
package configaction

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/option"
)

// BooleanCell is any option holding a boolean.
type BooleanCell interface {
	Name() string
	Comment() string
	BooleanValue() bool
	SetBooleanValue(v bool)
}

// SetBooleanValue returns an action accepting true/on/yes or false/off/no.
// Anything else fails and leaves the cell alone.
func SetBooleanValue(cell BooleanCell) action.ParameterizedAction {
	return func(_ action.Context, arg string) action.Result {
		v, ok := option.ParseBool(arg)
		if !ok {
			return action.ResultFail
		}
		cell.SetBooleanValue(v)
		return action.ResultSuccess
	}
}

// SetIntegerValue returns an action parsing a base-10 integer.
func SetIntegerValue(cell *option.Integer) action.ParameterizedAction {
	return func(_ action.Context, arg string) action.Result {
		v, ok := option.ParseInt(arg)
		if !ok {
			return action.ResultFail
		}
		cell.SetIntegerValue(v)
		return action.ResultSuccess
	}
}

// SetDoubleValue returns an action parsing a decimal number.
func SetDoubleValue(cell *option.Double) action.ParameterizedAction {
	return func(_ action.Context, arg string) action.Result {
		v, ok := option.ParseFloat(arg)
		if !ok {
			return action.ResultFail
		}
		cell.SetDoubleValue(v)
		return action.ResultSuccess
	}
}

// SetStringValue returns an action assigning its argument verbatim.
func SetStringValue(cell *option.String) action.ParameterizedAction {
	return func(_ action.Context, arg string) action.Result {
		cell.SetStringValue(arg)
		return action.ResultSuccess
	}
}

// SetListValue returns an action selecting a list value by name.
func SetListValue[T option.ListValue](cell *option.List[T]) action.ParameterizedAction {
	return func(_ action.Context, arg string) action.Result {
		v, ok := option.MatchName(cell.Values(), arg)
		if !ok {
			return action.ResultFail
		}
		cell.SetListValue(v)
		return action.ResultSuccess
	}
}

// setFromString covers cell types without a dedicated setter, e.g. lists
// of any value type.
func setFromString(cell option.Option) action.ParameterizedAction {
	return func(_ action.Context, arg string) action.Result {
		if !cell.SetValueFromString(arg) {
			return action.ResultFail
		}
		return action.ResultSuccess
	}
}

// ValueActionFor picks the setter matching the cell's type.
func ValueActionFor(cell option.Option) action.ParameterizedAction {
	switch c := cell.(type) {
	case BooleanCell:
		return SetBooleanValue(c)
	case *option.Integer:
		return SetIntegerValue(c)
	case *option.Double:
		return SetDoubleValue(c)
	case *option.String:
		return SetStringValue(c)
	}
	return setFromString(cell)
}

// RegisterValueActions registers a "set<Name>" parameterizable action for
// every cell.
func RegisterValueActions(reg *action.Registry, mod action.ModInfo, cells []option.Option) error {
	var errs []error
	for _, cell := range cells {
		name := "set" + Capitalize(cell.Name())
		a := action.NewParameterizable(mod, name, ValueActionFor(cell)).
			WithComment(fmt.Sprintf("Set the value of %s", cell.Name()))
		if err := reg.Register(a); err != nil {
			errs = append(errs, err)
		}
	}
	logger.DebugTagf("action", "Registered %d value actions for %s", len(cells)-len(errs), mod.ID)
	return errors.Join(errs...)
}

// Capitalize upper-cases the first rune of name and leaves the rest as is.
func Capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
