// Package history manages .renamify/history.json: the append-only ledger
// of applied plans consumed by undo/redo (spec.md §3 "HistoryEntry").
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/renamify-go/renamify/internal/casemodel"
)

// RenamePair is a (from, to) path recorded for a single applied rename.
type RenamePair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Entry records one applied plan.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Old       string    `json:"old"`
	New       string    `json:"new"`

	Styles   []casemodel.Style `json:"styles"`
	Includes []string          `json:"includes,omitempty"`
	Excludes []string          `json:"excludes,omitempty"`

	AffectedFiles map[string]string `json:"affected_files"`
	Renames       []RenamePair      `json:"renames"`
	BackupsPath   string            `json:"backups_path"`

	RevertOf string `json:"revert_of,omitempty"`
	RedoOf   string `json:"redo_of,omitempty"`
}

// Store is the on-disk history.json file.
type Store struct {
	path string
}

// Open returns a Store bound to <renamifyDir>/history.json. The file need
// not exist yet; it is created on first Append.
func Open(renamifyDir string) *Store {
	return &Store{path: filepath.Join(renamifyDir, "history.json")}
}

// Load reads every entry, oldest-first. A missing file is treated as empty
// history rather than an error.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return entries, nil
}

// Append adds a new entry to the end of the history file.
func (s *Store) Append(e Entry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	entries = append(entries, e)
	return s.writeAll(entries)
}

func (s *Store) writeAll(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// FindByID returns the most recent entry with the given entry id.
func FindByID(entries []Entry, id string) (Entry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].ID == id {
			return entries[i], true
		}
	}
	return Entry{}, false
}

// IsReverted reports whether some later entry reverts id.
func IsReverted(entries []Entry, id string) bool {
	for _, e := range entries {
		if e.RevertOf == id {
			return true
		}
	}
	return false
}

// RevertEntryFor returns the revert entry for id, if any.
func RevertEntryFor(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.RevertOf == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Latest returns the last entry in the history, if any.
func Latest(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[len(entries)-1], true
}
