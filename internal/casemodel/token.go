package casemodel

import (
	"strings"

	"github.com/renamify-go/renamify/internal/acronym"
)

// Token is a non-empty run of alphanumeric bytes. It carries only text, not
// a style — styling is a property of how tokens are rendered, not of the
// token itself.
type Token struct {
	Text string
}

// Model is an ordered sequence of Tokens. Rendering a Model in some target
// style and re-parsing it must reconstruct an equivalent token sequence.
type Model struct {
	Tokens []Token
}

func isDelimiter(b byte) bool {
	return b == '_' || b == '-' || b == '.' || b == ' '
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlnum(b byte) bool { return isUpper(b) || isLower(b) || isDigit(b) }

// Parse tokenizes s using the default acronym set.
func Parse(s string) Model {
	return ParseWithAcronyms(s, acronym.Default())
}

// ParseWithAcronyms tokenizes s with a single left-to-right byte pass plus
// lookahead, per spec.md §4.B. Delimiters (_, -, ., space) close the current
// token; acronyms are recognized greedily at token starts; camelCase and
// acronym-run boundaries are split according to the case-/digit-aware rules
// described there. Non-alphanumeric, non-delimiter bytes are dropped.
func ParseWithAcronyms(s string, acronyms *acronym.Set) Model {
	var tokens []Token
	b := []byte(s)
	var current []byte

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, Token{Text: string(current)})
			current = current[:0]
		}
	}

	i := 0
	for i < len(b) {
		c := b[i]

		if isDelimiter(c) {
			flush()
			i++
			continue
		}

		if !isAlnum(c) {
			i++
			continue
		}

		if len(current) == 0 {
			// Rule 1: longest-acronym lookup at token start.
			if acr := acronyms.FindLongestMatch(s, i); acr != "" {
				consistent := isAllUpper(acr) || isAllLowerOrDigit(acr)
				if consistent {
					nextPos := i + len(acr)
					skip := false
					if nextPos < len(b) {
						nb := b[nextPos]
						if isDigit(nb) && !containsDigit(acr) {
							skip = true
						}
						if isUpper(b[i]) && isUpper(nb) {
							if acronyms.FindLongestMatch(s, nextPos) != "" {
								skip = false
							} else {
								j := nextPos
								for j < len(b) && isUpper(b[j]) {
									j++
								}
								if j > nextPos {
									skip = true
								}
							}
						} else if isLower(b[i]) && isLower(nb) {
							skip = true
						}
					}
					if !skip {
						tokens = append(tokens, Token{Text: acr})
						i += len(acr)
						continue
					}
				}
			}

			// Rule 2: uppercase-run acronym heuristic (URLParser -> URL, Parser).
			if isUpper(c) {
				j := i
				for j < len(b) && isUpper(b[j]) {
					j++
				}
				if j > i+1 && j < len(b) && isLower(b[j]) {
					found := false
					for k := j - 1; k > i; k-- {
						candidate := s[i:k]
						if acronyms.IsAcronym(candidate) {
							tokens = append(tokens, Token{Text: candidate})
							i = k
							found = true
							break
						}
					}
					if !found {
						acronymPart := s[i : j-1]
						tokens = append(tokens, Token{Text: acronymPart})
						i = j - 1
					}
					continue
				}
			}
		}

		// Standard case-boundary detection.
		if i > 0 && len(current) > 0 {
			prev := b[i-1]
			shouldSplit := false

			if c >= 'A' && c <= 'Z' && prev >= 'A' && prev <= 'Z' {
				curStr := string(current)
				if isAllUpper(curStr) && acronyms.IsAcronym(curStr) {
					if i+1 < len(b) && isLower(b[i+1]) {
						shouldSplit = true
					}
				}
			}

			if !shouldSplit && isLower(prev) && isUpper(c) {
				// Rule 3: lower -> upper (camelBoundary).
				shouldSplit = true
			} else if !shouldSplit && isAlpha(prev) && isDigit(c) {
				// Rule 4: letter -> digit never splits unless the digit begins a
				// known digit-initial acronym (2FA).
				potential := []byte{c}
				j := i + 1
				for j < len(b) && (isUpper(b[j]) || isDigit(b[j])) {
					potential = append(potential, b[j])
					j++
				}
				shouldSplit = acronyms.IsAcronym(string(potential))
			} else if !shouldSplit && isDigit(prev) && isUpper(c) {
				// Rule 5: digit -> uppercase splits unless the combined run is a
				// known acronym (arm64Arch -> arm64, Arch; but not inside 2FA).
				digitStart := len(current)
				for digitStart > 0 && isDigit(current[digitStart-1]) {
					digitStart--
				}
				potential := append([]byte{}, current[digitStart:]...)
				j := i
				for j < len(b) && isUpper(b[j]) {
					potential = append(potential, b[j])
					j++
				}
				shouldSplit = !acronyms.IsAcronym(string(potential))
			}

			if shouldSplit {
				flush()
			}
		}

		current = append(current, c)
		i++
	}
	flush()

	if tokens == nil {
		tokens = []Token{}
	}
	return Model{Tokens: tokens}
}

func isAlpha(b byte) bool { return isUpper(b) || isLower(b) }

func isAllUpper(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isUpper(s[i]) {
			return false
		}
	}
	return true
}

func isAllLowerOrDigit(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLower(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}

// capitalizeFirst upper-cases the first Unicode scalar and lowers the rest,
// except that short (<=2 byte) all-uppercase tokens are preserved verbatim
// (treated as a short acronym).
func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 2 && isAllUpper(s) {
		return s
	}
	r := []rune(s)
	head := strings.ToUpper(string(r[0]))
	tail := strings.ToLower(string(r[1:]))
	return head + tail
}

func isAcronymToken(t Token, acronyms *acronym.Set) bool {
	return isAllUpper(t.Text) && acronyms.IsAcronym(t.Text)
}

// Render renders a token model in the given style using the default
// acronym set to decide which tokens to preserve verbatim.
func Render(m Model, style Style) string {
	return RenderWithAcronyms(m, style, acronym.Default())
}

// RenderWithAcronyms renders m in style, preserving all-uppercase tokens
// that are recognized acronyms (per spec.md §4.B "Render").
func RenderWithAcronyms(m Model, style Style, acronyms *acronym.Set) string {
	if len(m.Tokens) == 0 {
		return ""
	}

	switch style {
	case Snake:
		return joinCase(m.Tokens, "_", strings.ToLower)
	case Kebab:
		return joinCase(m.Tokens, "-", strings.ToLower)
	case Dot:
		return joinCase(m.Tokens, ".", strings.ToLower)
	case ScreamingSnake:
		return joinCase(m.Tokens, "_", strings.ToUpper)
	case ScreamingTrain:
		return joinCase(m.Tokens, "-", strings.ToUpper)
	case Lower:
		return joinCase(m.Tokens, "", strings.ToLower)
	case Upper:
		return joinCase(m.Tokens, "", strings.ToUpper)
	case Title:
		parts := make([]string, len(m.Tokens))
		for i, t := range m.Tokens {
			parts[i] = capitalizeFirst(t.Text)
		}
		return strings.Join(parts, " ")
	case Camel:
		var sb strings.Builder
		for i, t := range m.Tokens {
			if i == 0 {
				sb.WriteString(strings.ToLower(t.Text))
				continue
			}
			if isAcronymToken(t, acronyms) {
				sb.WriteString(t.Text)
			} else {
				sb.WriteString(capitalizeFirst(t.Text))
			}
		}
		return sb.String()
	case Pascal:
		var sb strings.Builder
		for _, t := range m.Tokens {
			if isAcronymToken(t, acronyms) {
				sb.WriteString(t.Text)
			} else {
				sb.WriteString(capitalizeFirst(t.Text))
			}
		}
		return sb.String()
	case Train:
		parts := make([]string, len(m.Tokens))
		for i, t := range m.Tokens {
			if isAcronymToken(t, acronyms) {
				parts[i] = t.Text
			} else {
				parts[i] = capitalizeFirst(t.Text)
			}
		}
		return strings.Join(parts, "-")
	default:
		return joinCase(m.Tokens, "_", strings.ToLower)
	}
}

func joinCase(tokens []Token, sep string, fn func(string) string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fn(t.Text)
	}
	return strings.Join(parts, sep)
}
