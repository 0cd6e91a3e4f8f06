// Package prefs persists past categorization decisions and user overrides.
// The store acts as a cache in front of the model backends and as the
// tool's substitute for a training signal.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sweeply/sweep/internal/model"
)

// Entry maps a pattern to a learned category. Pattern is either a file
// extension (".pdf") or a lowercase filename fragment. Count tracks how
// often the mapping was confirmed; entries are never deleted automatically.
type Entry struct {
	Pattern  string         `json:"pattern"`
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// Store is a flat-file preference store with an explicit load/save
// lifecycle. It is injected into the categorizer and the organize command
// rather than accessed as ambient state. Single-process by design; no
// concurrent-writer protection is provided.
type Store struct {
	path    string
	entries map[string]*Entry
	dirty   bool
}

// Load reads the preference file at path, creating an empty store if the
// file does not exist yet.
func Load(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]*Entry),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	for i := range entries {
		e := entries[i]
		s.entries[e.Pattern] = &e
	}
	return s, nil
}

// Save writes the store back to disk if anything changed.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}

	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Pattern < entries[j].Pattern })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	s.dirty = false
	return nil
}

// Lookup returns the learned category for a file, preferring an exact
// extension match over a filename-fragment match.
func (s *Store) Lookup(rec model.FileRecord) (model.Category, bool) {
	if rec.Ext != "" {
		if e, ok := s.entries[rec.Ext]; ok {
			return e.Category, true
		}
	}

	name := strings.ToLower(rec.Name)
	for pattern, e := range s.entries {
		if strings.HasPrefix(pattern, ".") {
			continue
		}
		if strings.Contains(name, pattern) {
			return e.Category, true
		}
	}
	return "", false
}

// Record stores or reinforces a pattern→category mapping. A conflicting
// category replaces the old one and restarts the count, so user overrides
// win over stale model decisions.
func (s *Store) Record(pattern string, category model.Category) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" || category == "" {
		return
	}

	if e, ok := s.entries[pattern]; ok {
		if e.Category == category {
			e.Count++
		} else {
			e.Category = category
			e.Count = 1
		}
	} else {
		s.entries[pattern] = &Entry{Pattern: pattern, Category: category, Count: 1}
	}
	s.dirty = true
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a sorted snapshot of all entries, for display.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Pattern < entries[j].Pattern })
	return entries
}
