package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAllMatchesLiteralKeywords(t *testing.T) {
	m := Build([]string{"old_value", "oldValue"})
	matches := m.FindAll([]byte("let x = oldValue + old_value;"))

	assert.Len(t, matches, 2)
	assert.Equal(t, "oldValue", matches[0].Keyword)
	assert.Equal(t, "old_value", matches[1].Keyword)
}

func TestFindAllPrefersLongestOverlappingMatch(t *testing.T) {
	m := Build([]string{"old", "old_value"})
	matches := m.FindAll([]byte("old_value"))

	if assert.Len(t, matches, 1) {
		assert.Equal(t, "old_value", matches[0].Keyword)
		assert.Equal(t, 0, matches[0].Start)
		assert.Equal(t, 9, matches[0].End)
	}
}

func TestFindAllNoMatches(t *testing.T) {
	m := Build([]string{"old_value"})
	matches := m.FindAll([]byte("nothing here"))
	assert.Empty(t, matches)
}
