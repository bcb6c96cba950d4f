package ambiguity

import (
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/stretchr/testify/assert"
)

func TestSuggestStyleGoFuncKeyword(t *testing.T) {
	style, ok := SuggestStyle("server.go", "func ", []casemodel.Style{casemodel.Camel, casemodel.Pascal})
	assert.True(t, ok)
	assert.Equal(t, casemodel.Camel, style)
}

func TestSuggestStyleGoTypeKeyword(t *testing.T) {
	style, ok := SuggestStyle("server.go", "type ", []casemodel.Style{casemodel.Camel, casemodel.Pascal})
	assert.True(t, ok)
	assert.Equal(t, casemodel.Pascal, style)
}

func TestSuggestStylePythonDef(t *testing.T) {
	style, ok := SuggestStyle("main.py", "def ", []casemodel.Style{casemodel.Snake, casemodel.Pascal})
	assert.True(t, ok)
	assert.Equal(t, casemodel.Snake, style)
}

func TestSuggestStyleUnknownExtension(t *testing.T) {
	_, ok := SuggestStyle("notes.txt", "class ", []casemodel.Style{casemodel.Pascal})
	assert.False(t, ok)
}

func TestSuggestStyleGoHasNoClassRule(t *testing.T) {
	// "class" suggests Pascal in Go files too? No — goRules has no "class"
	// entry, so this falls through to no suggestion regardless of possible.
	_, ok := SuggestStyle("server.go", "class ", []casemodel.Style{casemodel.Pascal})
	assert.False(t, ok)
}

func TestSuggestStyleNoPrecedingWord(t *testing.T) {
	_, ok := SuggestStyle("server.go", "", []casemodel.Style{casemodel.Camel})
	assert.False(t, ok)
}
