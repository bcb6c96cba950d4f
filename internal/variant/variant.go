// Package variant builds the VariantMap: an ordered mapping from each
// requested search-variant spelling of "old" to its corresponding
// replace-variant spelling of "new".
package variant

import (
	"github.com/renamify-go/renamify/internal/acronym"
	"github.com/renamify-go/renamify/internal/ambiguity"
	"github.com/renamify-go/renamify/internal/casemodel"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an ordered mapping from search-variant string to replace-variant
// string. Keys are unique; later inserts overwrite earlier ones in place
// (the ordered-map structure is a direct fit for spec.md §3's "Ordered
// mapping... Collisions overwrite in iteration order").
type Map = orderedmap.OrderedMap[string, string]

// New returns an empty, ready-to-use Map.
func New() *Map {
	return orderedmap.New[string, string]()
}

// AtomicConfig forces atomic (no-token-splitting, case-only) treatment of
// the search and/or replace strings. This is the supplemented "atomic
// identifiers" feature from SPEC_FULL.md, grounded on the Rust original's
// AtomicConfig.
type AtomicConfig struct {
	AtomicSearch  bool
	AtomicReplace bool
	// Names forces atomic treatment for any search/replace string that
	// case-insensitively equals one of these configured identifiers.
	Names []string
}

func (c *AtomicConfig) searchIsAtomic(s string) bool {
	if c == nil {
		return false
	}
	if c.AtomicSearch {
		return true
	}
	return c.matchesName(s)
}

func (c *AtomicConfig) replaceIsAtomic(s string) bool {
	if c == nil {
		return false
	}
	if c.AtomicReplace {
		return true
	}
	return c.matchesName(s)
}

func (c *AtomicConfig) matchesName(s string) bool {
	for _, n := range c.Names {
		if equalFold(n, s) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// atomicStyle renders s for an atomic identifier: lowercase/uppercase/as-
// typed variants only, never split into tokens.
func atomicStyle(s string, style casemodel.Style) string {
	switch style {
	case casemodel.Snake, casemodel.Kebab, casemodel.Dot, casemodel.Lower, casemodel.Camel:
		return toLowerASCII(s)
	case casemodel.ScreamingSnake, casemodel.ScreamingTrain, casemodel.Upper:
		return toUpperASCII(s)
	case casemodel.Pascal, casemodel.Train, casemodel.Title:
		return s
	default:
		return s
	}
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// Build constructs the VariantMap for (old, new), per spec.md §4.C: one
// entry per requested style, plus (when styles are the defaults and old is
// unambiguous) an Original-preserving old->new entry.
func Build(old, new string, styles []casemodel.Style, atomicCfg *AtomicConfig) *Map {
	return BuildWithAcronyms(old, new, styles, atomicCfg, acronym.Default())
}

// BuildWithAcronyms is Build with an explicit acronym set.
func BuildWithAcronyms(old, new string, styles []casemodel.Style, atomicCfg *AtomicConfig, acronyms *acronym.Set) *Map {
	usingDefaults := styles == nil
	active := styles
	if active == nil {
		active = casemodel.DefaultStyles()
	}

	searchAtomic := atomicCfg.searchIsAtomic(old)
	replaceAtomic := atomicCfg.replaceIsAtomic(new)

	var oldTokens, newTokens casemodel.Model
	if !searchAtomic {
		oldTokens = casemodel.ParseWithAcronyms(old, acronyms)
	}
	if !replaceAtomic {
		newTokens = casemodel.ParseWithAcronyms(new, acronyms)
	}

	m := New()
	for _, style := range active {
		var searchVariant, replaceVariant string
		if searchAtomic {
			searchVariant = atomicStyle(old, style)
		} else {
			searchVariant = casemodel.RenderWithAcronyms(oldTokens, style, acronyms)
		}
		if replaceAtomic {
			replaceVariant = atomicStyle(new, style)
		} else {
			replaceVariant = casemodel.RenderWithAcronyms(newTokens, style, acronyms)
		}
		m.Set(searchVariant, replaceVariant)
	}

	if usingDefaults && !ambiguity.IsAmbiguous(old) {
		m.Set(old, new)
	}

	return m
}
