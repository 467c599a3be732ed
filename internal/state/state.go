// Package state tracks which installation options have been applied
// between runs of the installer.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Set holds the IDs of currently installed options.
type Set map[string]struct{}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members sorted, for stable output.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type stateFile struct {
	Installed []string `json:"installed"`
}

// Store reads and writes the installed set at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user state file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "omarchy-cybex", "installer-state.json")
}

// Load reads the installed set. A missing or unparsable file is treated
// as empty state, never an error.
func (st *Store) Load() Set {
	s := make(Set)

	data, err := os.ReadFile(st.path)
	if err != nil {
		return s
	}

	var f stateFile
	if err := json.Unmarshal(data, &f); err != nil {
		return s
	}

	for _, id := range f.Installed {
		s[id] = struct{}{}
	}
	return s
}

// Save writes the set with sorted IDs via a temp file and rename, so a
// crash leaves either the old or the new content.
func (st *Store) Save(s Set) error {
	data, err := json.MarshalIndent(stateFile{Installed: s.IDs()}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(st.path), 0755); err != nil {
		return err
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, st.path)
}

// MarkInstalled adds id to the installed set and persists. Adding an
// already-present id is a no-op.
func (st *Store) MarkInstalled(id string) error {
	s := st.Load()
	if s.Has(id) {
		return nil
	}
	s[id] = struct{}{}
	return st.Save(s)
}

// MarkUninstalled removes id from the installed set and persists.
// Removing an absent id is a no-op.
func (st *Store) MarkUninstalled(id string) error {
	s := st.Load()
	if !s.Has(id) {
		return nil
	}
	delete(s, id)
	return st.Save(s)
}
