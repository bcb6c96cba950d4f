// Package casemodel parses identifiers into acronym- and digit-aware tokens
// and re-emits them in any of the supported naming styles.
package casemodel

// Style is one of the closed set of naming conventions renamify understands.
type Style string

const (
	Snake          Style = "snake"
	Kebab          Style = "kebab"
	Camel          Style = "camel"
	Pascal         Style = "pascal"
	ScreamingSnake Style = "screaming_snake"
	Title          Style = "title"
	Train          Style = "train"
	ScreamingTrain Style = "screaming_train"
	Dot            Style = "dot"
	Lower          Style = "lower"
	Upper          Style = "upper"
	// Original preserves the exact input string verbatim as one variant; it
	// never participates in rendering.
	Original Style = "original"
)

// DefaultStyles is the style list used when the caller does not request a
// specific subset. Title and Dot are opt-in only.
func DefaultStyles() []Style {
	return []Style{Snake, Kebab, Camel, Pascal, ScreamingSnake, Train, ScreamingTrain}
}

// AllStyles enumerates every renderable style (excludes Original, which is a
// marker rather than a renderable style).
func AllStyles() []Style {
	return []Style{Snake, Kebab, Camel, Pascal, ScreamingSnake, Title, Train, ScreamingTrain, Dot, Lower, Upper}
}

// DisplayName is the capitalized form used in human-facing messages
// ("coerced to Kebab style"), as opposed to the lowercase wire/flag form.
func (s Style) DisplayName() string {
	switch s {
	case Snake:
		return "Snake"
	case Kebab:
		return "Kebab"
	case Camel:
		return "Camel"
	case Pascal:
		return "Pascal"
	case ScreamingSnake:
		return "ScreamingSnake"
	case Title:
		return "Title"
	case Train:
		return "Train"
	case ScreamingTrain:
		return "ScreamingTrain"
	case Dot:
		return "Dot"
	case Lower:
		return "Lower"
	case Upper:
		return "Upper"
	case Original:
		return "Original"
	default:
		return string(s)
	}
}

// ParseStyle maps a user-facing flag value (e.g. "snake", "screaming-snake")
// to a Style, accepting both underscore and hyphen spellings.
func ParseStyle(s string) (Style, bool) {
	switch s {
	case "snake":
		return Snake, true
	case "kebab":
		return Kebab, true
	case "camel":
		return Camel, true
	case "pascal":
		return Pascal, true
	case "screaming_snake", "screaming-snake", "screamingsnake":
		return ScreamingSnake, true
	case "title":
		return Title, true
	case "train":
		return Train, true
	case "screaming_train", "screaming-train", "screamingtrain":
		return ScreamingTrain, true
	case "dot":
		return Dot, true
	case "lower":
		return Lower, true
	case "upper":
		return Upper, true
	case "original":
		return Original, true
	default:
		return "", false
	}
}
