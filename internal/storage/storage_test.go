package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadArrayMissingFile(t *testing.T) {
	t.Parallel()

	objects, err := ReadArray(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestReadArrayJSONC(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "actions.json")
	data := `[
  // an alias added by hand
  {"type": "alias", "parent": "tide:save", "alias": "s",},
  42,
  /* skipped */ "text",
  {"type": "macro", "name": "m", "actions": []},
]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	objects, err := ReadArray(path)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "s", objects[0]["alias"])
	assert.Equal(t, "macro", objects[1]["type"])
}

func TestReadArrayMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "actions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644))

	_, err := ReadArray(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "actions.json")
	in := []any{map[string]any{"type": "alias", "alias": "a", "parent": "x:y"}}

	require.NoError(t, WriteJSON(path, in))
	require.NoError(t, WriteJSON(path, in)) // overwrite in place

	objects, err := ReadArray(path)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"type": "alias", "alias": "a", "parent": "x:y"}}, objects)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
