package variant

import (
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/stretchr/testify/assert"
)

func TestBuildDefaultStylesUnambiguousOld(t *testing.T) {
	m := Build("old_value", "new_thing", nil, nil)

	expect := map[string]string{
		"old_value":  "new_thing",
		"old-value":  "new-thing",
		"oldValue":   "newThing",
		"OldValue":   "NewThing",
		"OLD_VALUE":  "NEW_THING",
		"Old-Value":  "New-Thing",
		"OLD-VALUE":  "NEW-THING",
	}
	for k, v := range expect {
		got, ok := m.Get(k)
		assert.True(t, ok, "missing key %q", k)
		assert.Equal(t, v, got, "key %q", k)
	}
}

func TestBuildRestrictedStyles(t *testing.T) {
	m := Build("old_value", "new_thing", []casemodel.Style{casemodel.Camel}, nil)
	got, ok := m.Get("oldValue")
	assert.True(t, ok)
	assert.Equal(t, "newThing", got)

	// Restricting styles suppresses the implicit Original-preserving entry.
	_, ok = m.Get("old_value")
	assert.False(t, ok)
}

func TestBuildAtomicSearchPreservesUnsplitSpelling(t *testing.T) {
	cfg := &AtomicConfig{AtomicSearch: true}
	m := Build("XMLHttp", "new_thing", []casemodel.Style{casemodel.Snake, casemodel.ScreamingSnake, casemodel.Pascal}, cfg)

	got, ok := m.Get("xmlhttp")
	assert.True(t, ok)
	assert.Equal(t, "new_thing", got)

	got, ok = m.Get("XMLHTTP")
	assert.True(t, ok)
	assert.Equal(t, "NEW_THING", got)

	got, ok = m.Get("XMLHttp")
	assert.True(t, ok)
	assert.Equal(t, "NewThing", got)
}
