package option

import (
	"strings"
)

// ListValue is one member of an enumerated value set.
type ListValue interface {
	// ID is the stable identifier written to config files.
	ID() string
	DisplayName() string
}

// MatchName finds the value whose ID or display name equals name, ignoring
// case and surrounding whitespace.
func MatchName[T ListValue](values []T, name string) (T, bool) {
	name = strings.TrimSpace(name)
	for _, v := range values {
		if strings.EqualFold(v.ID(), name) || strings.EqualFold(v.DisplayName(), name) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// List is a cell holding one value out of a fixed set.
type List[T ListValue] struct {
	base
	values       []T
	value        T
	defaultValue T
}

// NewList creates a list cell. values must not be empty.
func NewList[T ListValue](name string, defaultValue T, values []T, comment string) *List[T] {
	return &List[T]{
		base:         base{name: name, comment: comment},
		values:       values,
		value:        defaultValue,
		defaultValue: defaultValue,
	}
}

func (l *List[T]) ListValue() T        { return l.value }
func (l *List[T]) SetListValue(v T)    { l.value = v }
func (l *List[T]) ResetToDefault()     { l.value = l.defaultValue }
func (l *List[T]) StringValue() string { return l.value.ID() }
func (l *List[T]) Value() any          { return l.value.ID() }

// Values returns the allowed values.
func (l *List[T]) Values() []T {
	return append([]T(nil), l.values...)
}

// SetValueFromString selects the value matching s by name.
func (l *List[T]) SetValueFromString(s string) bool {
	v, ok := MatchName(l.values, s)
	if ok {
		l.value = v
	}
	return ok
}

// Cycle moves to the next (or previous) allowed value, wrapping around.
func (l *List[T]) Cycle(forward bool) {
	if len(l.values) == 0 {
		return
	}
	index := 0
	for i, v := range l.values {
		if v.ID() == l.value.ID() {
			index = i
			break
		}
	}
	if forward {
		index = (index + 1) % len(l.values)
	} else {
		index = (index - 1 + len(l.values)) % len(l.values)
	}
	l.value = l.values[index]
}
