package casemodel

import (
	"strings"

	"github.com/renamify-go/renamify/internal/acronym"
)

// DetectStyle classifies s as one of the renderable styles, or reports
// false when s is ambiguous or mixes incompatible conventions. All-lowercase
// and all-uppercase single words are deliberately ambiguous here — they flow
// through the ambiguity resolver (internal/ambiguity) instead.
func DetectStyle(s string) (Style, bool) {
	return DetectStyleWithAcronyms(s, acronym.Default())
}

// DetectStyleWithAcronyms is DetectStyle with an explicit acronym set, used
// by Train/ScreamingTrain disambiguation (is_train_case checks acronym
// membership for each hyphen-separated word).
func DetectStyleWithAcronyms(s string, acronyms *acronym.Set) (Style, bool) {
	if s == "" {
		return "", false
	}

	hasUnderscore := strings.ContainsRune(s, '_')
	hasHyphen := strings.ContainsRune(s, '-')
	hasDot := strings.ContainsRune(s, '.') && !strings.HasPrefix(s, ".")
	hasSpace := strings.ContainsRune(s, ' ')
	hasUpper := containsUpper(s)
	hasLower := containsLower(s)

	switch {
	case hasUnderscore && !hasHyphen && !hasDot && !hasSpace && !hasUpper && hasLower:
		return Snake, true
	case hasUnderscore && !hasHyphen && !hasDot && !hasSpace && hasUpper && !hasLower:
		return ScreamingSnake, true
	case hasUnderscore && !hasHyphen && !hasDot && !hasSpace && hasUpper && hasLower:
		// Mixed case with underscores (CARGO_BIN_EXE_foobar, DEBUG_mode) is not
		// a standard style; the matched portion's exact case must be preserved.
		return "", false

	case !hasUnderscore && hasHyphen && !hasDot && !hasSpace && !hasUpper && hasLower:
		return Kebab, true
	case !hasUnderscore && hasHyphen && !hasDot && !hasSpace && hasUpper && !hasLower:
		return ScreamingTrain, true
	case !hasUnderscore && hasHyphen && !hasDot && !hasSpace && hasUpper && hasLower:
		if isTrainCase(s, acronyms) {
			return Train, true
		}
		return "", false

	case hasUnderscore && hasHyphen && !hasDot && !hasSpace:
		hyphenPos := strings.IndexByte(s, '-')
		underscorePos := strings.IndexByte(s, '_')
		if underscorePos < hyphenPos {
			if hasUpper && !hasLower {
				return ScreamingSnake, true
			}
			return Snake, true
		}
		if hasUpper && !hasLower {
			return ScreamingTrain, true
		}
		if isTrainCase(s[:hyphenPos+1], acronyms) {
			return Train, true
		}
		return Kebab, true

	case !hasUnderscore && !hasHyphen && hasDot && !hasSpace && hasLower:
		return Dot, true

	case !hasUnderscore && !hasHyphen && !hasDot && hasSpace && hasUpper && hasLower:
		if isTitleCase(s) {
			return Title, true
		}
		return "", false

	case !hasUnderscore && !hasHyphen && !hasDot && !hasSpace && hasUpper && hasLower:
		if isUpper(s[0]) {
			return Pascal, true
		}
		if isLower(s[0]) {
			return Camel, true
		}
		return "", false

	default:
		return "", false
	}
}

func containsUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if isUpper(s[i]) {
			return true
		}
	}
	return false
}

func containsLower(s string) bool {
	for i := 0; i < len(s); i++ {
		if isLower(s[i]) {
			return true
		}
	}
	return false
}

func isTrainCase(s string, acronyms *acronym.Set) bool {
	words := strings.Split(s, "-")
	for _, w := range words {
		if w == "" {
			return false
		}
		isTitle := isUpper(w[0])
		for i := 1; i < len(w); i++ {
			if !isLower(w[i]) {
				isTitle = false
				break
			}
		}
		isAcr := len(w) >= 2 && isAllUpper(w) && acronyms.IsAcronym(w)
		if !isTitle && !isAcr {
			return false
		}
	}
	return true
}

func isTitleCase(s string) bool {
	words := strings.Split(s, " ")
	for _, w := range words {
		if w == "" {
			return false
		}
		if !isUpper(w[0]) {
			return false
		}
		for i := 1; i < len(w); i++ {
			if !isLower(w[i]) {
				return false
			}
		}
	}
	return true
}
