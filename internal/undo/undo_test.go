package undo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/renamify-go/renamify/internal/rnerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathJoinsRelativeAgainstRoot(t *testing.T) {
	assert.Equal(t, filepath.Join("/root", "a.go"), resolvePath("/root", "a.go"))
	assert.Equal(t, "/abs/a.go", resolvePath("/root", "/abs/a.go"))
}

func TestWriteRejectFileWritesPatchBesideTarget(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a"), 0o644))

	err := writeRejectFile(root, "a.go", []byte("--- a/a.go\n+++ b/a.go\n"), errors.New("does not apply"))

	var patchErr *rnerrors.PatchApplyError
	require.True(t, errors.As(err, &patchErr))
	assert.Equal(t, "a.go", patchErr.Path)

	rej, readErr := os.ReadFile(filepath.Join(root, "a.go.rej"))
	require.NoError(t, readErr)
	assert.Contains(t, string(rej), "--- a/a.go")
}
