package planmodel

import (
	"path/filepath"
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")

	plan := &Plan{
		ID:      "abc123",
		Old:     "old_value",
		New:     "new_thing",
		Styles:  []casemodel.Style{casemodel.Snake, casemodel.Camel},
		Matches: []MatchHunk{{File: "a.go", Start: 4, End: 13, Variant: "old_value", Replace: "new_thing"}},
		Paths:   []Rename{{Path: "old_value.go", NewPath: "new_thing.go", Kind: KindFile}},
		Version: CurrentVersion,
	}
	require.NoError(t, plan.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, plan.Old, got.Old)
	assert.Equal(t, plan.New, got.New)
	assert.Equal(t, plan.Styles, got.Styles)
	assert.Equal(t, plan.Matches, got.Matches)
	assert.Equal(t, plan.Paths, got.Paths)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
