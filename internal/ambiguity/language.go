package ambiguity

import (
	"path/filepath"
	"strings"

	"github.com/renamify-go/renamify/internal/casemodel"
)

// languageRule maps a preceding keyword to the style conventionally used
// after it in a given language. Left deliberately small and tunable per
// spec.md §9 Open Question 1 / DESIGN.md decision 1.
type languageRule struct {
	keyword string
	style   casemodel.Style
}

var rubyTypeScriptRules = []languageRule{
	{"class", casemodel.Pascal},
	{"module", casemodel.Pascal},
	{"interface", casemodel.Pascal},
	{"type", casemodel.Pascal},
	{"enum", casemodel.Pascal},
	{"def", casemodel.Snake},
	{"function", casemodel.Camel},
	{"const", casemodel.Camel},
	{"let", casemodel.Camel},
	{"var", casemodel.Camel},
}

var pythonRules = []languageRule{
	{"class", casemodel.Pascal},
	{"def", casemodel.Snake},
}

var goRules = []languageRule{
	{"type", casemodel.Pascal},
	{"func", casemodel.Camel},
}

func rulesForExtension(ext string) []languageRule {
	switch ext {
	case ".rb":
		return rubyTypeScriptRules
	case ".ts", ".tsx", ".js", ".jsx":
		return rubyTypeScriptRules
	case ".py":
		return pythonRules
	case ".go":
		return goRules
	default:
		return nil
	}
}

// SuggestStyle applies the language heuristic (spec.md §4.G level 1): the
// file extension plus the word immediately preceding the match on the same
// line suggest a conventional style, if that style is in possible.
func SuggestStyle(filePath, preceding string, possible []casemodel.Style) (casemodel.Style, bool) {
	ext := strings.ToLower(filepath.Ext(filePath))
	rules := rulesForExtension(ext)
	if rules == nil {
		return "", false
	}

	fields := strings.Fields(preceding)
	if len(fields) == 0 {
		return "", false
	}
	lastWord := strings.ToLower(strings.TrimRight(fields[len(fields)-1], "(<:"))

	for _, rule := range rules {
		if rule.keyword == lastWord && containsStyle(possible, rule.style) {
			return rule.style, true
		}
	}
	return "", false
}
