// Package ambiguity resolves which Style to use when an input string admits
// more than one naming convention (spec.md §4.G). The variant map alone
// cannot choose between "user_id -> account_id" and "user_id -> accountId"
// when the original is merely "userid"; this package supplies that choice.
package ambiguity

import (
	"github.com/renamify-go/renamify/internal/acronym"
	"github.com/renamify-go/renamify/internal/casemodel"
)

// Confidence records how sure the resolver is about its chosen style.
type Confidence string

const (
	High   Confidence = "high"
	Medium Confidence = "medium"
	Low    Confidence = "low"
)

// Method records which cascade level produced the resolution.
type Method string

const (
	NotAmbiguous             Method = "not_ambiguous"
	LanguageHeuristicMethod  Method = "language_heuristic"
	FileContextMethod        Method = "file_context"
	CrossFileContextMethod   Method = "cross_file_context"
	ReplacementPreference    Method = "replacement_preference"
	DefaultFallback          Method = "default_fallback"
)

// Resolved is the outcome of resolving an ambiguous match.
type Resolved struct {
	Style      casemodel.Style
	Confidence Confidence
	Method     Method
}

// Context carries everything the cascade levels may use to disambiguate a
// single match: its file, the line it appears on, the byte offset of the
// match within that line, and (for cross-file context) a project root.
type Context struct {
	FilePath      string
	FileContent   string
	LineContent   string
	MatchPosition int
	ProjectRoot   string
	// SyntheticNoLineContent marks a context built for filename/directory
	// renames, where there is no "line" for language heuristics to inspect
	// (spec.md §4.J step 2): file/cross-file context dominate instead.
	SyntheticNoLineContent bool
}

// defaultPrecedence is the final fallback ordering (spec.md §4.G level 5).
var defaultPrecedence = []casemodel.Style{
	casemodel.Snake, casemodel.Camel, casemodel.Pascal, casemodel.Kebab,
	casemodel.ScreamingSnake, casemodel.Train, casemodel.ScreamingTrain,
	casemodel.Title, casemodel.Dot,
}

// IsAmbiguous reports whether s admits more than one style after
// case-compatibility filtering (spec.md GLOSSARY "Ambiguous").
func IsAmbiguous(s string) bool {
	if _, ok := casemodel.DetectStyle(s); ok {
		return false
	}
	return len(GetPossibleStyles(s)) > 1
}

// GetPossibleStyles enumerates every style s could plausibly be rendered
// from, given only its case profile (not its separators — detect_style
// already determined there are no separators to go on).
func GetPossibleStyles(s string) []casemodel.Style {
	if s == "" {
		return nil
	}
	hasUpper, hasLower := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		} else if c >= 'a' && c <= 'z' {
			hasLower = true
		}
	}

	var styles []casemodel.Style
	allCandidates := []casemodel.Style{
		casemodel.Snake, casemodel.Kebab, casemodel.Camel, casemodel.Pascal,
		casemodel.ScreamingSnake, casemodel.Train, casemodel.ScreamingTrain,
		casemodel.Title, casemodel.Dot, casemodel.Lower, casemodel.Upper,
	}
	for _, st := range allCandidates {
		if isCaseCompatible(st, hasUpper, hasLower) {
			styles = append(styles, st)
		}
	}
	return styles
}

func isCaseCompatible(style casemodel.Style, hasUpper, hasLower bool) bool {
	switch style {
	case casemodel.ScreamingSnake, casemodel.ScreamingTrain, casemodel.Upper:
		// Uppercase-only styles are incompatible with any lowercase letter.
		return !hasLower
	case casemodel.Snake, casemodel.Kebab, casemodel.Camel, casemodel.Dot, casemodel.Lower:
		// Lowercase-led styles are incompatible with any uppercase letter
		// (Camel's first token is lowercase, but subsequent tokens could be
		// capitalized in a multi-word input — here s is a single word with
		// no detected separators, so any uppercase means it's not Camel-
		// compatible as a bare word).
		return !hasUpper
	case casemodel.Pascal, casemodel.Train, casemodel.Title:
		// All-uppercase text cannot be Pascal/Train/Title (never produces
		// mixed-case output like "Module" for an uppercase match).
		return !(hasUpper && !hasLower)
	default:
		return true
	}
}

// FilterCompatibleStyles narrows possible to only the styles compatible
// with matchedText's case profile. This is a defensive re-check layered on
// top of GetPossibleStyles for callers that built `possible` independently.
func FilterCompatibleStyles(matchedText string, possible []casemodel.Style) []casemodel.Style {
	hasUpper, hasLower := false, false
	for i := 0; i < len(matchedText); i++ {
		c := matchedText[i]
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		} else if c >= 'a' && c <= 'z' {
			hasLower = true
		}
	}
	var out []casemodel.Style
	for _, st := range possible {
		if isCaseCompatible(st, hasUpper, hasLower) {
			out = append(out, st)
		}
	}
	return out
}

// Resolver orchestrates the four-level resolution cascade plus the default
// fallback, using accumulated file/cross-file statistics.
type Resolver struct {
	acronyms    *acronym.Set
	fileStats   *fileContextAnalyzer
	crossStats  *crossFileContextAnalyzer
}

// NewResolver builds a resolver with the default acronym set.
func NewResolver() *Resolver {
	return &Resolver{
		acronyms:   acronym.Default(),
		fileStats:  newFileContextAnalyzer(),
		crossStats: newCrossFileContextAnalyzer(),
	}
}

// ObserveFile lets the resolver learn identifier-style frequencies from a
// file's content before (or while) resolving matches within it — used for
// level 2 (file context) and level 3 (cross-file context).
func (r *Resolver) ObserveFile(path, content string) {
	r.fileStats.observe(path, content)
	r.crossStats.observe(path, content)
}

// Resolve runs the full cascade for a single ambiguous match.
func (r *Resolver) Resolve(matchedText, replacementText string, ctx Context) Resolved {
	return r.ResolveWithStyles(matchedText, replacementText, ctx, nil)
}

// ResolveWithStyles is Resolve with a pre-computed set of possible styles
// for the replacement text (an optimization the original exposes too).
func (r *Resolver) ResolveWithStyles(matchedText, replacementText string, ctx Context, replacementPossible []casemodel.Style) Resolved {
	if style, ok := casemodel.DetectStyle(matchedText); ok {
		return Resolved{Style: style, Confidence: High, Method: NotAmbiguous}
	}

	possible := GetPossibleStyles(matchedText)
	constrained := FilterCompatibleStyles(matchedText, possible)
	if len(constrained) == 0 {
		return defaultFallback(possible, replacementText, replacementPossible)
	}

	if !ctx.SyntheticNoLineContent {
		if resolved, ok := tryLanguageHeuristics(ctx, constrained); ok {
			return resolved
		}
	}

	if resolved, ok := r.fileStats.resolve(ctx.FilePath, constrained); ok {
		return resolved
	}

	if resolved, ok := r.crossStats.resolve(ctx.FilePath, constrained); ok {
		return resolved
	}

	return defaultFallback(constrained, replacementText, replacementPossible)
}

func tryLanguageHeuristics(ctx Context, possible []casemodel.Style) (Resolved, bool) {
	if ctx.FilePath == "" || ctx.LineContent == "" {
		return Resolved{}, false
	}
	preceding := ctx.LineContent
	if ctx.MatchPosition > 0 && ctx.MatchPosition <= len(ctx.LineContent) {
		preceding = ctx.LineContent[:ctx.MatchPosition]
	}
	if style, ok := SuggestStyle(ctx.FilePath, preceding, possible); ok {
		return Resolved{Style: style, Confidence: High, Method: LanguageHeuristicMethod}, true
	}
	return Resolved{}, false
}

func defaultFallback(possible []casemodel.Style, replacementText string, replacementPossible []casemodel.Style) Resolved {
	if len(possible) == 1 {
		return Resolved{Style: possible[0], Confidence: Medium, Method: DefaultFallback}
	}

	if replacementText != "" {
		repPossible := replacementPossible
		if repPossible == nil {
			if st, ok := casemodel.DetectStyle(replacementText); ok {
				repPossible = []casemodel.Style{st}
			} else {
				repPossible = GetPossibleStyles(replacementText)
			}
		}
		for _, rp := range repPossible {
			if containsStyle(possible, rp) {
				return Resolved{Style: rp, Confidence: Medium, Method: ReplacementPreference}
			}
		}
	}

	for _, st := range defaultPrecedence {
		if containsStyle(possible, st) {
			return Resolved{Style: st, Confidence: Low, Method: DefaultFallback}
		}
	}
	if len(possible) > 0 {
		return Resolved{Style: possible[0], Confidence: Low, Method: DefaultFallback}
	}
	return Resolved{Style: casemodel.Snake, Confidence: Low, Method: DefaultFallback}
}

func containsStyle(styles []casemodel.Style, s casemodel.Style) bool {
	for _, st := range styles {
		if st == s {
			return true
		}
	}
	return false
}
