package option

import (
	"errors"
	"fmt"

	"facette.io/natsort"

	"github.com/bethropolis/tide-actions/internal/logger"
)

// Set is a named collection of cells, e.g. everything one module exposes.
type Set struct {
	options []Option
	byName  map[string]Option
}

func NewSet(options ...Option) *Set {
	s := &Set{byName: make(map[string]Option)}
	s.Add(options...)
	return s
}

// Add appends cells; a cell with an existing name replaces the earlier one.
func (s *Set) Add(options ...Option) {
	for _, o := range options {
		if _, exists := s.byName[o.Name()]; exists {
			logger.DebugTagf("option", "Replacing option '%s'", o.Name())
			for i, old := range s.options {
				if old.Name() == o.Name() {
					s.options[i] = o
				}
			}
		} else {
			s.options = append(s.options, o)
		}
		s.byName[o.Name()] = o
	}
}

// Get returns the cell with the given name, or nil.
func (s *Set) Get(name string) Option {
	return s.byName[name]
}

// All returns the cells in registration order.
func (s *Set) All() []Option {
	return append([]Option(nil), s.options...)
}

// Names returns the cell names in natural order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.options))
	for _, o := range s.options {
		names = append(names, o.Name())
	}
	natsort.Sort(names)
	return names
}

// Values returns the current values keyed by name, ready for TOML encoding.
func (s *Set) Values() map[string]any {
	values := make(map[string]any, len(s.options))
	for _, o := range s.options {
		values[o.Name()] = o.Value()
	}
	return values
}

// ApplyValues assigns decoded TOML values to the cells of the same name.
// Every value is tried; the returned error joins all the ones that failed.
func (s *Set) ApplyValues(values map[string]any) error {
	var errs []error
	for name, raw := range values {
		o := s.byName[name]
		if o == nil {
			errs = append(errs, fmt.Errorf("unknown option '%s'", name))
			continue
		}
		if err := apply(o, raw); err != nil {
			errs = append(errs, fmt.Errorf("option '%s': %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Cells are matched by behaviour so wrappers such as hotkeyed booleans
// receive typed values too.
type (
	booleanCell interface{ SetBooleanValue(bool) }
	integerCell interface{ SetIntegerValue(int) }
	doubleCell  interface{ SetDoubleValue(float64) }
)

func apply(o Option, raw any) error {
	switch cell := o.(type) {
	case booleanCell:
		v, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("expected a boolean, got %T", raw)
		}
		cell.SetBooleanValue(v)
	case integerCell:
		v, ok := raw.(int64)
		if !ok {
			return fmt.Errorf("expected an integer, got %T", raw)
		}
		cell.SetIntegerValue(int(v))
	case doubleCell:
		switch v := raw.(type) {
		case float64:
			cell.SetDoubleValue(v)
		case int64:
			cell.SetDoubleValue(float64(v))
		default:
			return fmt.Errorf("expected a number, got %T", raw)
		}
	default:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", raw)
		}
		if !o.SetValueFromString(s) {
			return fmt.Errorf("invalid value '%s'", s)
		}
	}
	return nil
}
