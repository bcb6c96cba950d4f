package ambiguity

import (
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/stretchr/testify/assert"
)

const snakeHeavyContent = "user_name user_name user_id foo_bar"

func TestResolveUsesFileContextWhenDominant(t *testing.T) {
	r := NewResolver()
	r.ObserveFile("a.txt", snakeHeavyContent)

	got := r.Resolve("userid", "", Context{FilePath: "a.txt"})
	assert.Equal(t, casemodel.Snake, got.Style)
	assert.Equal(t, FileContextMethod, got.Method)
	assert.Equal(t, High, got.Confidence)
}

func TestResolveFallsBackToCrossFileContextForUnseenFile(t *testing.T) {
	r := NewResolver()
	r.ObserveFile("b.txt", snakeHeavyContent)

	got := r.Resolve("userid", "", Context{FilePath: "c.txt"})
	assert.Equal(t, casemodel.Snake, got.Style)
	assert.Equal(t, CrossFileContextMethod, got.Method)
}
