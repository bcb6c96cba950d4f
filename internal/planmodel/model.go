// Package planmodel holds the on-disk data model shared by the scanner,
// rename planner, apply engine, and undo engine: MatchHunk, Rename,
// RenameConflict, and Plan (spec.md §3). History entries live in
// internal/history.
package planmodel

import (
	"encoding/json"
	"os"
	"time"

	"github.com/renamify-go/renamify/internal/casemodel"
)

// ConflictKind classifies why a candidate rename was excluded from a Plan.
type ConflictKind string

const (
	MultipleToOne   ConflictKind = "multiple_to_one"
	CaseInsensitive ConflictKind = "case_insensitive"
	WindowsReserved ConflictKind = "windows_reserved"
)

// RenameKind distinguishes file renames from directory renames.
type RenameKind string

const (
	KindFile RenameKind = "file"
	KindDir  RenameKind = "dir"
)

// MatchHunk is the persisted form of a single content match: everything the
// apply engine needs to rewrite one byte range of one file, plus the
// preview/undo metadata accumulated as the plan moves through the pipeline.
type MatchHunk struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Col       int    `json:"col"`
	Variant   string `json:"variant"`
	Content   string `json:"content"`
	Replace   string `json:"replace"`
	Start     int    `json:"start"`
	End       int    `json:"end"`

	LineBefore string `json:"line_before,omitempty"`
	LineAfter  string `json:"line_after,omitempty"`

	CoercionApplied string `json:"coercion_applied,omitempty"`

	OriginalFile string `json:"original_file,omitempty"`
	RenamedFile  string `json:"renamed_file,omitempty"`
	PatchHash    string `json:"patch_hash,omitempty"`
}

// Rename is a single planned filename or directory rename.
type Rename struct {
	Path            string     `json:"path"`
	NewPath         string     `json:"new_path"`
	Kind            RenameKind `json:"kind"`
	CoercionApplied string     `json:"coercion_applied,omitempty"`
}

// RenameConflict records a rejected rename target.
type RenameConflict struct {
	Sources []string     `json:"sources"`
	Target  string       `json:"target"`
	Kind    ConflictKind `json:"kind"`
}

// Stats aggregates scan-wide counters.
type Stats struct {
	FilesScanned     int            `json:"files_scanned"`
	TotalMatches     int            `json:"total_matches"`
	MatchesByVariant map[string]int `json:"matches_by_variant"`
	FilesWithMatches int            `json:"files_with_matches"`
}

// Plan is the full transactional description of a rename operation.
type Plan struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Old       string    `json:"old"`
	New       string    `json:"new"`

	Styles   []casemodel.Style `json:"styles"`
	Includes []string          `json:"includes,omitempty"`
	Excludes []string          `json:"excludes,omitempty"`

	Matches []MatchHunk      `json:"matches"`
	Paths   []Rename         `json:"paths"`
	Conflicts []RenameConflict `json:"conflicts,omitempty"`

	Stats   Stats  `json:"stats"`
	Version int    `json:"version"`

	CreatedDirectories []string `json:"created_directories,omitempty"`
}

// CurrentVersion is the Plan schema version written by this implementation.
const CurrentVersion = 1

// Save writes the plan as pretty-printed JSON to path.
func (p *Plan) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads and parses a Plan from path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
