// Package coercion implements the restyle-to-context engine (spec.md
// §4.F): when a replacement variant is dropped into a larger identifier
// (or the surrounding line), its rendered style is coerced to match the
// style of whatever already surrounds it, so "old_value" replaced inside
// "get_old_valueFoo" does not produce a style collision.
package coercion

import (
	"strings"

	"github.com/renamify-go/renamify/internal/acronym"
	"github.com/renamify-go/renamify/internal/casemodel"
)

// unsafeStyles cannot be reliably coerced into: Dot-separated identifiers
// are frequently namespace paths rather than compound words, and a style
// that DetectStyle could not classify at all (the zero value, "mixed")
// must not be guessed at.
var unsafeStyles = map[casemodel.Style]bool{
	casemodel.Dot: true,
}

// Result describes the outcome of attempting to coerce a replacement to
// its surrounding container's style.
type Result struct {
	Text    string
	Applied bool
	Style   casemodel.Style
}

// ContainerStyle inspects the text immediately surrounding a match
// (line content with the match itself excised) and returns the style the
// replacement should be coerced to, or false if no safe container style
// could be determined.
func ContainerStyle(lineBefore, lineAfter string, acronyms *acronym.Set) (casemodel.Style, bool) {
	if acronyms == nil {
		acronyms = acronym.Default()
	}
	context := extractIdentifierContext(lineBefore, lineAfter)
	if context == "" {
		return "", false
	}
	style, ok := casemodel.DetectStyleWithAcronyms(context, acronyms)
	if !ok || unsafeStyles[style] {
		return "", false
	}
	return style, true
}

// extractIdentifierContext pulls the identifier fragments immediately
// adjoining a match: the trailing identifier run of lineBefore and the
// leading identifier run of lineAfter, joined so DetectStyle sees them as
// one token run the way they'd read once substitution glues them back
// together.
func extractIdentifierContext(lineBefore, lineAfter string) string {
	before := trailingIdentifierRun(lineBefore)
	after := leadingIdentifierRun(lineAfter)
	return before + after
}

func trailingIdentifierRun(s string) string {
	i := len(s)
	for i > 0 && isIdentByte(s[i-1]) {
		i--
	}
	return s[i:]
}

func leadingIdentifierRun(s string) string {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i]
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Coerce renders replacement in containerStyle if doing so is safe
// (containerStyle is not in unsafeStyles and was actually detected), else
// returns the original rendering in fallbackStyle untouched.
func Coerce(replacement casemodel.Model, fallbackStyle casemodel.Style, lineBefore, lineAfter string, acronyms *acronym.Set) Result {
	if acronyms == nil {
		acronyms = acronym.Default()
	}
	// No adjoining identifier characters at all means the match stands
	// alone on the line; nothing to coerce against.
	if !hasAdjoiningIdentChars(lineBefore, lineAfter) {
		return Result{
			Text:  casemodel.RenderWithAcronyms(replacement, fallbackStyle, acronyms),
			Style: fallbackStyle,
		}
	}
	style, ok := ContainerStyle(lineBefore, lineAfter, acronyms)
	if !ok {
		return Result{
			Text:  casemodel.RenderWithAcronyms(replacement, fallbackStyle, acronyms),
			Style: fallbackStyle,
		}
	}
	return Result{
		Text:    casemodel.RenderWithAcronyms(replacement, style, acronyms),
		Applied: true,
		Style:   style,
	}
}

func hasAdjoiningIdentChars(lineBefore, lineAfter string) bool {
	return trailingIdentifierRun(lineBefore) != "" || leadingIdentifierRun(lineAfter) != ""
}

// IsAtomicSafe reports whether name should be exempted from coercion
// because it was configured as an atomic identifier (variant.AtomicConfig
// Names); atomic identifiers are inserted verbatim regardless of context.
func IsAtomicSafe(name string, atomicNames []string) bool {
	for _, n := range atomicNames {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
