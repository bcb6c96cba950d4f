package coercion

import (
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/stretchr/testify/assert"
)

func TestCoerceMatchesSurroundingCamelContainer(t *testing.T) {
	replacement := casemodel.Parse("new_thing")
	got := Coerce(replacement, casemodel.Snake, "get", "Cache", nil)

	assert.True(t, got.Applied)
	assert.Equal(t, casemodel.Camel, got.Style)
	assert.Equal(t, "newThing", got.Text)
}

func TestCoerceFallsBackWhenNoAdjoiningIdentifier(t *testing.T) {
	replacement := casemodel.Parse("new_thing")
	got := Coerce(replacement, casemodel.Snake, " ", " ", nil)

	assert.False(t, got.Applied)
	assert.Equal(t, casemodel.Snake, got.Style)
	assert.Equal(t, "new_thing", got.Text)
}

func TestContainerStyleDetectsSnakeAcrossMatchBoundary(t *testing.T) {
	style, ok := ContainerStyle("get_", "_cache", nil)
	assert.True(t, ok)
	assert.Equal(t, casemodel.Snake, style)
}

func TestIsAtomicSafeCaseInsensitive(t *testing.T) {
	assert.True(t, IsAtomicSafe("XMLHttp", []string{"xmlhttp"}))
	assert.False(t, IsAtomicSafe("XMLHttp", []string{"other"}))
}
