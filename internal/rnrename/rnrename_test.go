package rnrename

import (
	"path/filepath"
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/renamify-go/renamify/internal/planmodel"
	"github.com/renamify-go/renamify/internal/variant"
	"github.com/stretchr/testify/assert"
)

// Plan's conflict detection probes the target directory's case
// sensitivity by writing a throwaway file there, so every test gives it a
// real, isolated directory via t.TempDir() rather than bare relative names.

func TestPlanAcceptsSimpleRename(t *testing.T) {
	dir := t.TempDir()
	renames, conflicts := Plan([]Candidate{
		{Path: filepath.Join(dir, "old_value.go"), NewPath: filepath.Join(dir, "new_thing.go"), Kind: planmodel.KindFile},
	})

	assert.Empty(t, conflicts)
	if assert.Len(t, renames, 1) {
		assert.Equal(t, filepath.Join(dir, "old_value.go"), renames[0].Path)
		assert.Equal(t, filepath.Join(dir, "new_thing.go"), renames[0].NewPath)
	}
}

func TestPlanSkipsNoOpRenames(t *testing.T) {
	dir := t.TempDir()
	renames, conflicts := Plan([]Candidate{
		{Path: filepath.Join(dir, "same.go"), NewPath: filepath.Join(dir, "same.go"), Kind: planmodel.KindFile},
	})
	assert.Empty(t, renames)
	assert.Empty(t, conflicts)
}

func TestPlanDetectsMultipleToOneConflict(t *testing.T) {
	dir := t.TempDir()
	renames, conflicts := Plan([]Candidate{
		{Path: filepath.Join(dir, "a_old.go"), NewPath: filepath.Join(dir, "target.go"), Kind: planmodel.KindFile},
		{Path: filepath.Join(dir, "b_old.go"), NewPath: filepath.Join(dir, "target.go"), Kind: planmodel.KindFile},
	})
	assert.Empty(t, renames)
	if assert.Len(t, conflicts, 1) {
		assert.Equal(t, planmodel.MultipleToOne, conflicts[0].Kind)
		assert.ElementsMatch(t, []string{filepath.Join(dir, "a_old.go"), filepath.Join(dir, "b_old.go")}, conflicts[0].Sources)
	}
}

func TestPlanDetectsWindowsReservedName(t *testing.T) {
	dir := t.TempDir()
	renames, conflicts := Plan([]Candidate{
		{Path: filepath.Join(dir, "old.go"), NewPath: filepath.Join(dir, "con.go"), Kind: planmodel.KindFile},
	})
	assert.Empty(t, renames)
	if assert.Len(t, conflicts, 1) {
		assert.Equal(t, planmodel.WindowsReserved, conflicts[0].Kind)
	}
}

func TestCaseInsensitiveFSProbeDetectsSensitivity(t *testing.T) {
	// On the case-sensitive filesystems this suite runs against, a
	// lowercase probe file must not resolve under its uppercase spelling.
	assert.False(t, CaseInsensitiveFS(t.TempDir()))
}

func TestCaseInsensitiveFSProbeFalseForMissingDir(t *testing.T) {
	assert.False(t, CaseInsensitiveFS(filepath.Join(t.TempDir(), "does-not-exist")))
}

func TestDeriveNameExactStemMatch(t *testing.T) {
	vmap := variant.New()
	vmap.Set("old_value", "new_thing")

	newName, coerced := DeriveName("old_value.go", vmap, nil, casemodel.Snake)
	assert.Equal(t, "new_thing.go", newName)
	assert.Empty(t, coerced)
}

func TestDeriveNameCaseInsensitiveFallbackReportsDetectedStyle(t *testing.T) {
	vmap := variant.New()
	vmap.Set("oldvalue", "newthing")

	newName, coerced := DeriveName("Oldvalue.go", vmap, nil, casemodel.Snake)
	assert.Equal(t, "Newthing.go", newName)
	assert.Equal(t, "coerced to Pascal style", coerced)
}

func TestDeriveNameNoMatchReturnsOriginal(t *testing.T) {
	vmap := variant.New()
	vmap.Set("old_value", "new_thing")

	newName, coerced := DeriveName("unrelated.go", vmap, nil, casemodel.Snake)
	assert.Equal(t, "unrelated.go", newName)
	assert.Empty(t, coerced)
}
