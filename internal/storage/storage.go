// Package storage reads and writes the JSON files user configuration is
// persisted in. Files are read as JSONC, so hand-edited files may carry
// comments and trailing commas; writes go through a temp file and a rename.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/bethropolis/tide-actions/internal/logger"
)

// ParseArray strips JSONC comments from data and decodes a JSON array,
// keeping only the elements that are objects.
func ParseArray(data []byte) ([]map[string]any, error) {
	var raw []any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing JSON array: %w", err)
	}

	objects := make([]map[string]any, 0, len(raw))
	for i, el := range raw {
		obj, ok := el.(map[string]any)
		if !ok {
			logger.DebugTagf("storage", "Skipping non-object array element %d (%T)", i, el)
			continue
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// ReadArray reads a JSONC array file. A missing file yields an empty list.
func ReadArray(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.DebugTagf("storage", "File not found, starting empty: %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	objects, err := ParseArray(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return objects, nil
}

// Marshal encodes v as indented JSON.
func Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteJSON encodes v and replaces path with it atomically.
func WriteJSON(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
