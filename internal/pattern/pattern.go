// Package pattern implements the multi-literal matcher over VariantMap keys
// (spec.md §4.D): an Aho–Corasick automaton, built once per plan and reused
// across every scanned file, operating on raw UTF-8 bytes with no regex
// involved.
package pattern

import (
	"sort"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// Match is one raw keyword match: the byte offsets [Start, End) in the
// scanned content and the VariantMap key that matched there.
type Match struct {
	Start   int
	End     int
	Keyword string
}

// Matcher wraps a built Aho–Corasick trie over a fixed keyword set.
type Matcher struct {
	trie *ahocorasick.Trie
}

// Build constructs a Matcher over keywords. Keywords should be the ordered
// keys of a variant.Map; longest-first alternation is achieved by the trie
// itself (Aho–Corasick naturally reports every match, and FindAll below
// keeps the longest match starting at each position).
func Build(keywords []string) *Matcher {
	builder := ahocorasick.NewTrieBuilder()
	builder.AddStrings(keywords)
	return &Matcher{trie: builder.Build()}
}

// FindAll returns every non-overlapping match in content, taking matches
// by earliest start and preferring the longest keyword among those that
// share a start, then skipping past the chosen match before continuing (so
// callers get a single coherent substitution pass rather than having to
// dedupe all raw automaton hits themselves).
func (m *Matcher) FindAll(content []byte) []Match {
	raw := m.trie.Match(content)
	if len(raw) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(raw))
	for _, r := range raw {
		start := int(r.Pos())
		kw := string(r.Match())
		matches = append(matches, Match{Start: start, End: start + len(kw), Keyword: kw})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return (matches[i].End - matches[i].Start) > (matches[j].End - matches[j].Start)
	})

	var out []Match
	lastEnd := -1
	for _, mm := range matches {
		if mm.Start < lastEnd {
			continue
		}
		out = append(out, mm)
		lastEnd = mm.End
	}
	return out
}
