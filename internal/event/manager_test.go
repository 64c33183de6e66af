package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerDispatch(t *testing.T) {
	t.Parallel()

	m := NewManager()
	var got []string

	m.Subscribe(TypeActionRegistered, func(e Event) bool {
		got = append(got, "first:"+e.Data.(ActionData).RegistryName)
		return false
	})
	m.Subscribe(TypeActionRegistered, func(e Event) bool {
		got = append(got, "second")
		return true // consume
	})
	m.Subscribe(TypeActionRegistered, func(e Event) bool {
		got = append(got, "third")
		return false
	})

	m.Dispatch(TypeActionRegistered, ActionData{RegistryName: "tide:foo"})
	m.Dispatch(TypeActionsSaved, StorageData{}) // no handlers

	assert.Equal(t, []string{"first:tide:foo", "second"}, got)
}

func TestNilManagerDispatch(t *testing.T) {
	t.Parallel()

	var m *Manager
	assert.NotPanics(t, func() { m.Dispatch(TypeActionRemoved, nil) })
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "actions_saved", TypeActionsSaved.String())
	assert.Equal(t, "unknown", TypeUnknown.String())
}
