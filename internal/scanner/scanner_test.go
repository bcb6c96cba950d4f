package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/renamify-go/renamify/internal/variant"
	"github.com/renamify-go/renamify/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFindsExactVariantOccurrence(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nvar old_value = 1\n"), 0o644))

	vmap := variant.Build("old_value", "new_thing", nil, nil)
	res, err := Scan(Options{
		Walker:   walker.Options{Root: root},
		Old:      "old_value",
		New:      "new_thing",
		Variants: vmap,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.FilesScanned)
	assert.Equal(t, 1, res.Stats.FilesWithMatches)
	if assert.Len(t, res.Matches, 1) {
		assert.Equal(t, "old_value", res.Matches[0].Variant)
		assert.Equal(t, "new_thing", res.Matches[0].Replace)
		assert.Equal(t, 3, res.Matches[0].Line)
	}
}

func TestScanFindsCompoundOccurrence(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nvar myOldValueCache = 1\n"), 0o644))

	vmap := variant.Build("old_value", "new_thing", nil, nil)
	res, err := Scan(Options{
		Walker:   walker.Options{Root: root},
		Old:      "old_value",
		New:      "new_thing",
		Variants: vmap,
	})
	require.NoError(t, err)

	if assert.Len(t, res.Matches, 1) {
		assert.Equal(t, "myOldValueCache", res.Matches[0].Variant)
		assert.Equal(t, "myNewThingCache", res.Matches[0].Replace)
	}
}

func TestCoercionReasonFormatsCapitalizedStyle(t *testing.T) {
	assert.Equal(t, "coerced to Kebab style", coercionReason(casemodel.Kebab))
	assert.Equal(t, "coerced to Pascal style", coercionReason(casemodel.Pascal))
	assert.Equal(t, "coerced to ScreamingSnake style", coercionReason(casemodel.ScreamingSnake))
}

func TestScanExcludesMatchingLines(t *testing.T) {
	root := t.TempDir()
	content := "package main\n\n// old_value kept for compatibility\nvar old_value = 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(content), 0o644))

	vmap := variant.Build("old_value", "new_thing", nil, nil)
	res, err := Scan(Options{
		Walker:               walker.Options{Root: root},
		Old:                  "old_value",
		New:                  "new_thing",
		Variants:             vmap,
		ExcludeMatchingLines: []string{"kept for compatibility"},
	})
	require.NoError(t, err)

	if assert.Len(t, res.Matches, 1) {
		assert.Equal(t, 4, res.Matches[0].Line)
	}
}
