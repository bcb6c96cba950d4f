package casemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStyleBasics(t *testing.T) {
	cases := []struct {
		in    string
		style Style
		ok    bool
	}{
		{"old_value", Snake, true},
		{"OLD_VALUE", ScreamingSnake, true},
		{"old-value", Kebab, true},
		{"OLD-VALUE", ScreamingTrain, true},
		{"Old-Value", Train, true},
		{"oldValue", Camel, true},
		{"OldValue", Pascal, true},
		{"old.value", Dot, true},
		{"Old Value", Title, true},
	}
	for _, c := range cases {
		style, ok := DetectStyle(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.Equal(t, c.style, style, "input %q", c.in)
		}
	}
}

func TestDetectStyleAmbiguousMixedUnderscore(t *testing.T) {
	_, ok := DetectStyle("DEBUG_mode")
	assert.False(t, ok)
}

func TestDetectStyleKebabNonTrainIsAmbiguous(t *testing.T) {
	// "foo-Bar" mixes a lowercase word with a title-case word but isn't
	// consistently train-case, so it should not resolve to Train.
	_, ok := DetectStyle("foo-Bar")
	assert.False(t, ok)
}
