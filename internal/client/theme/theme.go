// Package theme persists the dark-mode preference between runs.
package theme

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type prefs struct {
	Dark bool `json:"dark"`
}

// Store reads and writes the theme flag in a small JSON file.
type Store struct {
	mu   sync.Mutex
	path string
	dark bool
}

// Open loads the preference file, defaulting to light when it is missing or
// unreadable.
func Open(path string) *Store {
	s := &Store{path: path}
	if raw, err := os.ReadFile(path); err == nil {
		var p prefs
		if json.Unmarshal(raw, &p) == nil {
			s.dark = p.Dark
		}
	}
	return s
}

func (s *Store) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Toggle flips the flag and persists it, returning the new value.
func (s *Store) Toggle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = !s.dark
	return s.dark, s.persist()
}

// SetDark stores an explicit value.
func (s *Store) SetDark(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = dark
	return s.persist()
}

func (s *Store) persist() error {
	raw, err := json.Marshal(prefs{Dark: s.dark})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
