package ambiguity

import (
	"testing"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/stretchr/testify/assert"
)

func TestIsAmbiguousLowercaseWord(t *testing.T) {
	assert.True(t, IsAmbiguous("userid"))
}

func TestIsAmbiguousFalseForDelimited(t *testing.T) {
	assert.False(t, IsAmbiguous("user_id"))
}

func TestGetPossibleStylesExcludesUppercaseOnlyForLowercaseWord(t *testing.T) {
	styles := GetPossibleStyles("userid")
	assert.NotContains(t, styles, casemodel.ScreamingSnake)
	assert.NotContains(t, styles, casemodel.ScreamingTrain)
	assert.NotContains(t, styles, casemodel.Upper)
	assert.Contains(t, styles, casemodel.Snake)
	assert.Contains(t, styles, casemodel.Pascal)
}

func TestResolveNotAmbiguousShortCircuits(t *testing.T) {
	r := NewResolver()
	got := r.Resolve("user_id", "account_id", Context{})
	assert.Equal(t, Resolved{Style: casemodel.Snake, Confidence: High, Method: NotAmbiguous}, got)
}

func TestResolveFallsBackToDefaultPrecedence(t *testing.T) {
	r := NewResolver()
	got := r.Resolve("userid", "", Context{})
	assert.Equal(t, casemodel.Snake, got.Style)
	assert.Equal(t, DefaultFallback, got.Method)
}

func TestResolvePrefersReplacementStyle(t *testing.T) {
	r := NewResolver()
	got := r.Resolve("userid", "accountId", Context{})
	assert.Equal(t, casemodel.Camel, got.Style)
	assert.Equal(t, ReplacementPreference, got.Method)
}
