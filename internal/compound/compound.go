// Package compound implements the embedded-identifier matcher (spec.md
// §4.E): it finds occurrences of the search identifier's tokens nested
// inside a larger compound identifier (e.g. "old" inside "myOldValue" or
// "old_value_cache") that the plain Aho–Corasick pass over generated
// variants (internal/pattern) cannot see, because the compound as a whole
// never appears verbatim in variant.Map.
package compound

import (
	"regexp"

	"github.com/renamify-go/renamify/internal/acronym"
	"github.com/renamify-go/renamify/internal/casemodel"
)

// identifierRun matches a maximal run of letters, digits, and the internal
// separators '_'/'-' that case boundaries are detected within; it is
// deliberately broader than any single style so it captures whole compound
// identifiers regardless of their casing.
var identifierRun = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_-]*`)

// Match is one embedded occurrence: [Start, End) are byte offsets of the
// whole enclosing identifier in content, and TokenStart/TokenEnd are the
// indices (within that identifier's token model) of the subsequence that
// matched the search tokens.
type Match struct {
	Start, End           int
	Identifier           string
	TokenStart, TokenEnd int
	Model                casemodel.Model
}

// Matcher finds compound occurrences of a fixed search token sequence.
type Matcher struct {
	searchTokens  []string
	acronyms      *acronym.Set
	allowedStyles map[casemodel.Style]bool
}

// New builds a Matcher over the token text of search (case-folded), using
// acronyms for tokenizing candidate identifiers found in scanned content.
// styles restricts acceptance to compounds whose own detected style is
// among them (spec.md §4.E step 3: "tokenization of old under some
// considered style"); nil means the default style set, matching
// variant.Build's own default-active behavior. A compound whose style
// can't be determined (DetectStyleWithAcronyms reports false) is never
// excluded on style grounds, since there is nothing to compare against.
func New(search casemodel.Model, acronyms *acronym.Set, styles []casemodel.Style) *Matcher {
	if acronyms == nil {
		acronyms = acronym.Default()
	}
	tokens := make([]string, len(search.Tokens))
	for i, t := range search.Tokens {
		tokens[i] = foldToken(t.Text)
	}
	active := styles
	if active == nil {
		active = casemodel.DefaultStyles()
	}
	allowed := make(map[casemodel.Style]bool, len(active))
	for _, s := range active {
		allowed[s] = true
	}
	return &Matcher{searchTokens: tokens, acronyms: acronyms, allowedStyles: allowed}
}

func foldToken(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// FindAll scans content for identifiers that embed the search token
// sequence as a contiguous subsequence, but whose own token count exceeds
// the search's (a pure equal-length match belongs to the pattern engine,
// not here). Overlap resolution across compound and exact matches is the
// caller's responsibility (see internal/scanner), which applies the same
// earliest-start/longest-wins rule uniformly.
func (m *Matcher) FindAll(content []byte) []Match {
	if len(m.searchTokens) == 0 {
		return nil
	}
	var out []Match
	for _, loc := range identifierRun.FindAllIndex(content, -1) {
		start, end := loc[0], loc[1]
		ident := string(content[start:end])
		model := casemodel.ParseWithAcronyms(ident, m.acronyms)
		if len(model.Tokens) <= len(m.searchTokens) {
			continue
		}
		if style, detected := casemodel.DetectStyleWithAcronyms(ident, m.acronyms); detected && !m.allowedStyles[style] {
			continue
		}
		ts, te, ok := m.findSubsequence(model)
		if !ok {
			continue
		}
		out = append(out, Match{
			Start: start, End: end,
			Identifier: ident,
			TokenStart: ts, TokenEnd: te,
			Model: model,
		})
	}
	return out
}

// findSubsequence returns the contiguous token range in model that matches
// the search tokens case-insensitively, preferring the earliest match.
func (m *Matcher) findSubsequence(model casemodel.Model) (start, end int, ok bool) {
	n := len(m.searchTokens)
	tokens := model.Tokens
	for i := 0; i+n <= len(tokens); i++ {
		match := true
		for j := 0; j < n; j++ {
			if foldToken(tokens[i+j].Text) != m.searchTokens[j] {
				match = false
				break
			}
		}
		if match {
			return i, i + n, true
		}
	}
	return 0, 0, false
}

// Rewrite produces the replacement text for a compound Match: the matched
// token subsequence is replaced by replacement's tokens rendered in the
// compound's own detected style (falling back to style if detection
// fails), and the surrounding tokens of the original compound identifier
// are preserved verbatim.
func Rewrite(match Match, replacement casemodel.Model, style casemodel.Style, acronyms *acronym.Set) string {
	if acronyms == nil {
		acronyms = acronym.Default()
	}
	detected, ok := casemodel.DetectStyleWithAcronyms(match.Identifier, acronyms)
	if !ok {
		detected = style
	}
	before := match.Model.Tokens[:match.TokenStart]
	after := match.Model.Tokens[match.TokenEnd:]

	merged := casemodel.Model{}
	merged.Tokens = append(merged.Tokens, before...)
	merged.Tokens = append(merged.Tokens, replacement.Tokens...)
	merged.Tokens = append(merged.Tokens, after...)
	return casemodel.RenderWithAcronyms(merged, detected, acronyms)
}
