package rnconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaultWhenNoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadReadsRenamifyYml(t *testing.T) {
	dir := t.TempDir()
	contents := "acronyms:\n  - MCP\nunrestricted_level: 2\ndefault_styles:\n  - snake\n  - camel\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".renamify.yml"), []byte(contents), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"MCP"}, cfg.ExtraAcronyms)
	assert.Equal(t, 2, cfg.UnrestrictedLevel)
	assert.Equal(t, []casemodel.Style{casemodel.Snake, casemodel.Camel}, cfg.ResolvedStyles())
}

func TestResolvedStylesEmptyWhenUnset(t *testing.T) {
	assert.Nil(t, Default().ResolvedStyles())
}
