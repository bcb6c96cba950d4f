package casemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSplitsOnCaseBoundaries(t *testing.T) {
	m := Parse("getUserID")
	var texts []string
	for _, tok := range m.Tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"get", "User", "ID"}, texts)
}

func TestParseHandlesSnakeAndKebab(t *testing.T) {
	assert.Equal(t, []string{"old", "value"}, tokenTexts(Parse("old_value")))
	assert.Equal(t, []string{"old", "value"}, tokenTexts(Parse("old-value")))
}

func TestParseKeepsKnownAcronymWhole(t *testing.T) {
	m := Parse("HTTPClient")
	assert.Equal(t, []string{"HTTP", "Client"}, tokenTexts(m))
}

func TestParseDigitBoundaryDoesNotSplitPlainSuffix(t *testing.T) {
	// letter->digit never splits unless the digit run is itself a known
	// acronym (e.g. "2FA"); "arm64" stays one token.
	assert.Equal(t, []string{"arm64"}, tokenTexts(Parse("arm64")))
}

func TestParseDigitThenUpperSplitsUnlessAcronym(t *testing.T) {
	assert.Equal(t, []string{"arm64", "Arch"}, tokenTexts(Parse("arm64Arch")))
}

func TestRenderStyles(t *testing.T) {
	m := Parse("old_value")
	assert.Equal(t, "old_value", Render(m, Snake))
	assert.Equal(t, "old-value", Render(m, Kebab))
	assert.Equal(t, "oldValue", Render(m, Camel))
	assert.Equal(t, "OldValue", Render(m, Pascal))
	assert.Equal(t, "OLD_VALUE", Render(m, ScreamingSnake))
	assert.Equal(t, "Old-Value", Render(m, Train))
}

func TestRenderPreservesAcronymCasing(t *testing.T) {
	m := Parse("HTTPClient")
	assert.Equal(t, "HTTPClient", Render(m, Pascal))
	assert.Equal(t, "httpClient", Render(m, Camel))
}

func tokenTexts(m Model) []string {
	out := make([]string, len(m.Tokens))
	for i, tok := range m.Tokens {
		out[i] = tok.Text
	}
	return out
}
