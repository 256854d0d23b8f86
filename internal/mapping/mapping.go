// Package mapping persists identifier-to-display-name dictionaries:
// one for user ids, one for group DM conversation ids. The backing
// file is a flat JSON object, UTF-8, meant to be hand-editable.
package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// NameMapping is a file-backed id -> display name dictionary. Every
// update rewrites the backing file in full before returning; there is
// no deferred flush. Single-writer: concurrent external writers are
// last-writer-wins.
type NameMapping struct {
	path    string
	entries map[string]string
}

// New creates an empty NameMapping persisting to path. An empty path
// gives an in-memory mapping that cannot be saved.
func New(path string) *NameMapping {
	return &NameMapping{
		path:    path,
		entries: make(map[string]string),
	}
}

// Load reads the backing file. A missing file leaves the mapping empty
// and is not an error. Any other failure is returned: swallowing it
// would risk clobbering the file on the next Save.
func (m *NameMapping) Load() error {
	if m.path == "" {
		return nil
	}
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading name mapping: %w", err)
	}
	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decoding name mapping %s: %w", m.path, err)
	}
	m.entries = entries
	return nil
}

// Save rewrites the backing file with the current entries, creating
// the parent directory if needed. HTML escaping is off so non-ASCII
// display names are written literally.
func (m *NameMapping) Save() error {
	if m.path == "" {
		return errors.New("name mapping has no backing file")
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return fmt.Errorf("creating mapping directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.entries); err != nil {
		return fmt.Errorf("encoding name mapping: %w", err)
	}
	return os.WriteFile(m.path, buf.Bytes(), 0600)
}

// Name returns the display name mapped to id, or id itself when no
// mapping exists. Never fails for unknown ids.
func (m *NameMapping) Name(id string) string {
	if name, ok := m.entries[id]; ok {
		return name
	}
	return id
}

// Update sets the entry for id and persists the whole mapping before
// returning.
func (m *NameMapping) Update(id, name string) error {
	m.entries[id] = name
	return m.Save()
}

// Len returns the number of mapped identifiers.
func (m *NameMapping) Len() int {
	return len(m.entries)
}

// IDs returns the mapped identifiers, sorted.
func (m *NameMapping) IDs() []string {
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
