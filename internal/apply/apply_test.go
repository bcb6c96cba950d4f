package apply

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/renamify-go/renamify/internal/logx"
	"github.com/renamify-go/renamify/internal/planmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByFileSortsHunksByStart(t *testing.T) {
	matches := []planmodel.MatchHunk{
		{File: "a.go", Start: 10},
		{File: "a.go", Start: 2},
		{File: "b.go", Start: 5},
	}
	grouped := groupByFile(matches)

	require.Len(t, grouped["a.go"], 2)
	assert.Equal(t, 2, matches[grouped["a.go"][0]].Start)
	assert.Equal(t, 10, matches[grouped["a.go"][1]].Start)
	require.Len(t, grouped["b.go"], 1)
}

func TestVerifyHunksDetectsContentDrift(t *testing.T) {
	content := []byte("let old_value = 1;")
	hunks := []planmodel.MatchHunk{{File: "a.go", Start: 4, End: 13, Variant: "old_value"}}
	assert.NoError(t, verifyHunks(content, hunks))

	drifted := []planmodel.MatchHunk{{File: "a.go", Start: 4, End: 13, Variant: "mismatch!"}}
	assert.Error(t, verifyHunks(content, drifted))
}

func TestApplyHunksSubstitutesBackToFront(t *testing.T) {
	content := []byte("old_value and old_value again")
	hunks := []planmodel.MatchHunk{
		{Start: 0, End: 9, Replace: "new_thing"},
		{Start: 14, End: 23, Replace: "new_thing"},
	}
	got := applyHunks(content, hunks)
	assert.Equal(t, "new_thing and new_thing again", string(got))
}

func TestApplyPrefixRewriteRewritesNestedPath(t *testing.T) {
	rewritten := map[string]string{"old_dir": "new_dir"}
	assert.Equal(t, "new_dir", applyPrefixRewrite("old_dir", rewritten))
	assert.Equal(t, filepath.Join("new_dir", "file.go"), applyPrefixRewrite(filepath.Join("old_dir", "file.go"), rewritten))
	assert.Equal(t, "unrelated.go", applyPrefixRewrite("unrelated.go", rewritten))
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.go")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeFileAtomic(path, []byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not survive a successful write")
}

func TestWriteReversePatchWritesHashNamedFile(t *testing.T) {
	dir := t.TempDir()
	hash, err := writeReversePatch(dir, "a.go", "new content\n", "old content\n")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, hash+".patch"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "-new content")
	assert.Contains(t, string(data), "+old content")
}

func TestPerformRenamesDeepestFirstWithPrefixRewrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "old_dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "old_dir", "file.go"), []byte("package old"), 0o644))

	logger, err := logx.Open(filepath.Join(root, "apply.log"), false)
	require.NoError(t, err)
	defer logger.Close()

	renames := []planmodel.Rename{
		{Path: "old_dir", NewPath: "new_dir", Kind: planmodel.KindDir},
		{Path: filepath.Join("old_dir", "file.go"), NewPath: filepath.Join("old_dir", "new_file.go"), Kind: planmodel.KindFile},
	}

	pairs, _, rewrites, err := performRenames(root, renames, logger)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	_, err = os.Stat(filepath.Join(root, "new_dir", "new_file.go"))
	assert.NoError(t, err, "nested rename must be rewritten under the renamed parent directory")

	_, err = os.Stat(filepath.Join(root, "old_dir"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, "new_dir", resolveRenamedPath("old_dir", rewrites))
	assert.Equal(t, filepath.Join("new_dir", "new_file.go"), resolveRenamedPath(filepath.Join("old_dir", "file.go"), rewrites))
}

func TestResolveRenamedPathChainsThroughAncestorRename(t *testing.T) {
	rewrites := map[string]string{
		filepath.Join("a", "b", "c.go"): filepath.Join("a", "b", "c2.go"),
		filepath.Join("a", "b"):         filepath.Join("a", "b2"),
		"a":                             "a2",
	}
	assert.Equal(t, filepath.Join("a2", "b2", "c2.go"), resolveRenamedPath(filepath.Join("a", "b", "c.go"), rewrites))
}

func TestResolvePathJoinsRelativeAgainstRoot(t *testing.T) {
	assert.Equal(t, filepath.Join("/root", "a.go"), resolvePath("/root", "a.go"))
	assert.True(t, strings.HasPrefix(resolvePath("/root", "/abs/a.go"), "/abs"))
}
