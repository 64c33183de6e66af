package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopAction(name string) *Simple {
	return NewSimple(testMod, name, func(Context) Result { return ResultSuccess })
}

func TestContainsMacroLoop(t *testing.T) {
	t.Parallel()

	m := NewMacro("m", noopAction("a"))
	m2 := NewMacro("m2", NewMacro("inner", m))
	unrelated := noopAction("unrelated")

	assert.True(t, ContainsMacroLoop(m, []NamedAction{m}))
	assert.True(t, ContainsMacroLoop(m, []NamedAction{unrelated, m2}))
	assert.True(t, ContainsMacroLoop(m, []NamedAction{NewAlias("am", m)}))
	assert.False(t, ContainsMacroLoop(m, []NamedAction{unrelated}))
	assert.False(t, ContainsMacroLoop(m, []NamedAction{NewMacro("other", unrelated)}))
	assert.False(t, ContainsMacroLoop(m, nil))
}

func TestMacroMutationsRejectLoops(t *testing.T) {
	t.Parallel()

	a := noopAction("a")
	m := NewMacro("m", a)
	wrapper := NewMacro("wrapper", m)

	tests := []struct {
		name   string
		mutate func() error
	}{
		{"SetActions", func() error { return m.SetActions([]NamedAction{a, m}) }},
		{"AddActions", func() error { return m.AddActions(wrapper) }},
		{"InsertActions", func() error { return m.InsertActions(0, NewAlias("self", m)) }},
		{"ReplaceAt", func() error { _, err := m.ReplaceAt(0, wrapper); return err }},
		{"ImportAppend", func() error { _, err := m.Import([]NamedAction{m}, ImportAppend); return err }},
		{"ImportOverwrite", func() error { _, err := m.Import([]NamedAction{wrapper}, ImportOverwrite); return err }},
	}

	for _, tt := range tests {
		err := tt.mutate()
		require.ErrorIs(t, err, ErrMacroLoop, tt.name)
		assert.Equal(t, []NamedAction{a}, m.Actions(), "%s must leave the list unchanged", tt.name)
	}
}

func TestMacroMutations(t *testing.T) {
	t.Parallel()

	a, b, c, d := noopAction("a"), noopAction("b"), noopAction("c"), noopAction("d")
	m := NewMacro("m", a)

	require.NoError(t, m.AddActions(b, c))
	require.NoError(t, m.InsertActions(1, d))
	assert.Equal(t, []NamedAction{a, d, b, c}, m.Actions())

	ok, err := m.ReplaceAt(1, b)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = m.ReplaceAt(10, b)
	require.NoError(t, err)
	assert.False(t, ok)

	m.RemoveAt(0, 2, 2, 99)
	assert.Equal(t, []NamedAction{b, c}, m.Actions())

	n, err := m.Import([]NamedAction{a}, ImportAppend)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, m.Len())

	n, err = m.Import([]NamedAction{d}, ImportOverwrite)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []NamedAction{d}, m.Actions())
}

func TestMacroOwnsItsList(t *testing.T) {
	t.Parallel()

	a, b := noopAction("a"), noopAction("b")
	staging := []NamedAction{a}
	m := NewMacro("m", staging...)

	staging[0] = b
	assert.Equal(t, []NamedAction{a}, m.Actions())

	view := m.Actions()
	view[0] = b
	assert.Equal(t, []NamedAction{a}, m.Actions())

	other := NewMacro("other")
	require.NoError(t, other.SetActions(m.Actions()))
	require.NoError(t, m.AddActions(b))
	assert.Equal(t, 1, other.Len())
}
