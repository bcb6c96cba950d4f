package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectPaths(t *testing.T, opts Options) []string {
	t.Helper()
	var got []string
	err := Walk(opts, func(f File) error {
		rel, relErr := filepath.Rel(opts.Root, f.Path)
		require.NoError(t, relErr)
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	return got
}

func TestWalkSkipsHiddenAndGitDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref: refs/heads/main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("secret"), 0o644))

	got := collectPaths(t, Options{Root: root})
	assert.Equal(t, []string{"main.go"}, got)
}

func TestWalkHonorsGitignoreLayering(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("ignored.go\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kept.go"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.go"), []byte("package main"), 0o644))

	got := collectPaths(t, Options{Root: root})
	assert.Equal(t, []string{"kept.go"}, got)
}

func TestWalkUnrestrictedLevelSkipsIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("ignored.go\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kept.go"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.go"), []byte("package main"), 0o644))

	got := collectPaths(t, Options{Root: root, UnrestrictedLevel: 1})
	assert.ElementsMatch(t, []string{"kept.go", "ignored.go"}, got)
}

func TestWalkExcludeGlobExpandsBareDirName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "pkg", "lib.go"), []byte("package pkg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0o644))

	got := collectPaths(t, Options{Root: root, Exclude: []string{"vendor"}})
	assert.Equal(t, []string{"main.go"}, got)
}

func TestWalkIncludeGlobFiltersFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# hi"), 0o644))

	got := collectPaths(t, Options{Root: root, Include: []string{"**/*.go"}})
	assert.Equal(t, []string{"main.go"}, got)
}

func TestWalkSkipsBinaryByExtension(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "image.png"), []byte{0x89, 'P', 'N', 'G'}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0o644))

	got := collectPaths(t, Options{Root: root})
	assert.Equal(t, []string{"main.go"}, got)
}
