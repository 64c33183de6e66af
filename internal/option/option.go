// Package option holds the typed configuration cells actions read and write.
package option

import (
	"strconv"
	"strings"
)

// Option is the common view of every cell type.
type Option interface {
	Name() string
	Comment() string
	// StringValue renders the current value for listings.
	StringValue() string
	// SetValueFromString parses s and applies it, reporting whether it parsed.
	SetValueFromString(s string) bool
	ResetToDefault()
	// Value returns the current value in its TOML-encodable form.
	Value() any
}

type base struct {
	name    string
	comment string
}

func (b *base) Name() string    { return b.name }
func (b *base) Comment() string { return b.comment }

// Boolean is an on/off cell.
type Boolean struct {
	base
	value        bool
	defaultValue bool
}

func NewBoolean(name string, defaultValue bool, comment string) *Boolean {
	return &Boolean{
		base:         base{name: name, comment: comment},
		value:        defaultValue,
		defaultValue: defaultValue,
	}
}

func (b *Boolean) BooleanValue() bool        { return b.value }
func (b *Boolean) SetBooleanValue(v bool)    { b.value = v }
func (b *Boolean) Toggle()                   { b.value = !b.value }
func (b *Boolean) ResetToDefault()           { b.value = b.defaultValue }
func (b *Boolean) StringValue() string       { return strconv.FormatBool(b.value) }
func (b *Boolean) Value() any                { return b.value }
func (b *Boolean) DefaultBooleanValue() bool { return b.defaultValue }

func (b *Boolean) SetValueFromString(s string) bool {
	v, ok := ParseBool(s)
	if ok {
		b.value = v
	}
	return ok
}

// Integer is a bounded integer cell. Values outside [min, max] are clamped.
type Integer struct {
	base
	value, defaultValue int
	min, max            int
}

func NewInteger(name string, defaultValue, min, max int, comment string) *Integer {
	i := &Integer{base: base{name: name, comment: comment}, min: min, max: max}
	i.defaultValue = i.clamp(defaultValue)
	i.value = i.defaultValue
	return i
}

func (i *Integer) IntegerValue() int     { return i.value }
func (i *Integer) SetIntegerValue(v int) { i.value = i.clamp(v) }
func (i *Integer) ResetToDefault()       { i.value = i.defaultValue }
func (i *Integer) StringValue() string   { return strconv.Itoa(i.value) }
func (i *Integer) Value() any            { return int64(i.value) }
func (i *Integer) Range() (lo, hi int)   { return i.min, i.max }
func (i *Integer) clamp(v int) int       { return max(i.min, min(i.max, v)) }

func (i *Integer) SetValueFromString(s string) bool {
	v, ok := ParseInt(s)
	if ok {
		i.SetIntegerValue(v)
	}
	return ok
}

// Double is a bounded floating point cell.
type Double struct {
	base
	value, defaultValue float64
	min, max            float64
}

func NewDouble(name string, defaultValue, min, max float64, comment string) *Double {
	d := &Double{base: base{name: name, comment: comment}, min: min, max: max}
	d.defaultValue = d.clamp(defaultValue)
	d.value = d.defaultValue
	return d
}

func (d *Double) DoubleValue() float64     { return d.value }
func (d *Double) SetDoubleValue(v float64) { d.value = d.clamp(v) }
func (d *Double) ResetToDefault()          { d.value = d.defaultValue }
func (d *Double) Value() any               { return d.value }
func (d *Double) clamp(v float64) float64  { return max(d.min, min(d.max, v)) }
func (d *Double) Range() (lo, hi float64)  { return d.min, d.max }

func (d *Double) StringValue() string {
	return strconv.FormatFloat(d.value, 'g', -1, 64)
}

func (d *Double) SetValueFromString(s string) bool {
	v, ok := ParseFloat(s)
	if ok {
		d.SetDoubleValue(v)
	}
	return ok
}

// String is a free-form text cell.
type String struct {
	base
	value, defaultValue string
}

func NewString(name, defaultValue, comment string) *String {
	return &String{
		base:         base{name: name, comment: comment},
		value:        defaultValue,
		defaultValue: defaultValue,
	}
}

func (s *String) StringValue() string     { return s.value }
func (s *String) SetStringValue(v string) { s.value = v }
func (s *String) ResetToDefault()         { s.value = s.defaultValue }
func (s *String) Value() any              { return s.value }

// SetValueFromString assigns v verbatim.
func (s *String) SetValueFromString(v string) bool {
	s.value = v
	return true
}

// ParseBool accepts true/on/yes and false/off/no, ignoring case and
// surrounding whitespace.
func ParseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "yes":
		return true, true
	case "false", "off", "no":
		return false, true
	}
	return false, false
}

// ParseInt parses a base-10 integer after trimming whitespace.
func ParseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil
}

// ParseFloat parses a decimal number after trimming whitespace. The format
// is locale independent.
func ParseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}
