// Package rnrename implements the rename planner (spec.md §4.J): it
// derives file and directory renames from a VariantMap, applies coercion,
// and detects the three conflict kinds a Plan can report. Path names do
// not go through the ambiguity resolver the scanner uses for content. Its conflict-map-then-detect
// shape is grounded on the teacher's planRenameOperations
// (core/batch_rename.go), generalized from flat "index-based template
// rename" to identifier substitution.
package rnrename

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/renamify-go/renamify/internal/acronym"
	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/renamify-go/renamify/internal/planmodel"
	"github.com/renamify-go/renamify/internal/variant"
)

// windowsReservedNames are the DOS device names Windows forbids as a bare
// file/directory stem, case-insensitively, with or without an extension.
var windowsReservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// CaseInsensitiveFS probes whether the filesystem backing dir is
// case-insensitive by creating a lowercase throwaway file and looking it
// up under its uppercase spelling (spec.md §4.J / GLOSSARY), rather than
// guessing from GOOS — APFS volumes are commonly case-sensitive and other
// platforms can mount case-insensitive filesystems too.
func CaseInsensitiveFS(dir string) bool {
	probe := filepath.Join(dir, ".renamify-case-probe")
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return false
	}
	f.Close()
	defer os.Remove(probe)

	lowerInfo, err := os.Stat(probe)
	if err != nil {
		return false
	}
	upperInfo, err := os.Stat(filepath.Join(dir, strings.ToUpper(filepath.Base(probe))))
	if err != nil {
		return false
	}
	return os.SameFile(lowerInfo, upperInfo)
}

// Candidate is one path the planner considered for renaming, before
// conflict resolution collapses the set into Plan.Paths/Plan.Conflicts.
type Candidate struct {
	Path    string
	NewPath string
	Kind    planmodel.RenameKind
	// Coercion records the coerced style name, empty if none applied.
	Coercion string
}

// Plan checks every candidate in paths whose NewPath differs from its
// Path, in ascending Path order whatever order the caller passed, and
// returns the accepted renames plus any rejected conflicts.
func Plan(paths []Candidate) ([]planmodel.Rename, []planmodel.RenameConflict) {
	targets := map[string][]string{} // lower-cased target -> source paths
	byTarget := map[string]string{}  // exact target -> winning source
	fsProbeCache := map[string]bool{}
	caseInsensitive := func(dir string) bool {
		if v, ok := fsProbeCache[dir]; ok {
			return v
		}
		v := CaseInsensitiveFS(dir)
		fsProbeCache[dir] = v
		return v
	}

	var renames []planmodel.Rename
	var conflicts []planmodel.RenameConflict

	order := append([]Candidate(nil), paths...)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Path < order[j].Path })

	for _, c := range order {
		if c.NewPath == c.Path {
			continue
		}
		key := strings.ToLower(c.NewPath)
		targets[key] = append(targets[key], c.Path)
	}

	seen := map[string]bool{}
	for _, c := range order {
		if c.NewPath == c.Path {
			continue
		}
		key := strings.ToLower(c.NewPath)
		if seen[key] {
			continue
		}
		seen[key] = true

		sources := targets[key]
		if len(sources) > 1 {
			conflicts = append(conflicts, planmodel.RenameConflict{
				Sources: sources,
				Target:  c.NewPath,
				Kind:    planmodel.MultipleToOne,
			})
			continue
		}

		if caseInsensitive(filepath.Dir(c.NewPath)) && key != strings.ToLower(c.Path) && existsCaseInsensitiveCollision(c.Path, c.NewPath) {
			conflicts = append(conflicts, planmodel.RenameConflict{
				Sources: []string{c.Path},
				Target:  c.NewPath,
				Kind:    planmodel.CaseInsensitive,
			})
			continue
		}

		if isWindowsReserved(c.NewPath) {
			conflicts = append(conflicts, planmodel.RenameConflict{
				Sources: []string{c.Path},
				Target:  c.NewPath,
				Kind:    planmodel.WindowsReserved,
			})
			continue
		}

		byTarget[key] = c.Path
		renames = append(renames, planmodel.Rename{
			Path:            c.Path,
			NewPath:         c.NewPath,
			Kind:            c.Kind,
			CoercionApplied: c.Coercion,
		})
	}

	return renames, conflicts
}

func isWindowsReserved(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return windowsReservedNames[strings.ToLower(stem)]
}

// existsCaseInsensitiveCollision reports whether renaming old to new would
// collide with an existing sibling that differs only in case (and is not
// old itself), the kind of hazard a true case-insensitive filesystem
// collapses silently.
func existsCaseInsensitiveCollision(old, new string) bool {
	dir := filepath.Dir(new)
	newBase := strings.ToLower(filepath.Base(new))
	entries, err := readDirNames(dir)
	if err != nil {
		return false
	}
	for _, name := range entries {
		if strings.ToLower(name) == newBase && filepath.Join(dir, name) != old {
			return true
		}
	}
	return false
}

// DeriveName computes the renamed basename for a path given the
// VariantMap. An exact (case-sensitive, then case-insensitive) stem match
// in vmap is used directly; otherwise the stem is matched case-
// insensitively against every key and the winning replacement is coerced
// to the stem's own detected style, since a bare filename carries no
// surrounding-line context for the scanner's ambiguity cascade to use.
func DeriveName(name string, vmap *variant.Map, acronyms *acronym.Set, fallbackStyle casemodel.Style) (newName string, coercedStyle string) {
	if acronyms == nil {
		acronyms = acronym.Default()
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	if vmap == nil {
		return name, ""
	}
	if repl, ok := vmap.Get(stem); ok {
		return repl + ext, ""
	}

	style, detected := casemodel.DetectStyleWithAcronyms(stem, acronyms)
	if !detected {
		style = fallbackStyle
	}
	for pair := vmap.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(pair.Key, stem) {
			restyled := casemodel.RenderWithAcronyms(casemodel.ParseWithAcronyms(pair.Value, acronyms), style, acronyms)
			return restyled + ext, "coerced to " + style.DisplayName() + " style"
		}
	}
	return name, ""
}

func readDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
