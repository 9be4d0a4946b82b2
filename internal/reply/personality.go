package reply

import "strings"

// Style is the classified personality style.
type Style int

const (
	StyleNeutral Style = iota
	StyleFriendly
	StyleProfessional
)

// String implements fmt.Stringer.
func (s Style) String() string {
	switch s {
	case StyleFriendly:
		return "friendly"
	case StyleProfessional:
		return "professional"
	default:
		return "neutral"
	}
}

// ClassifyStyle maps a raw personality name to a style. All substring
// heuristics live here instead of at the call sites.
func ClassifyStyle(personalityName string) Style {
	name := strings.ToLower(strings.TrimSpace(personalityName))
	switch {
	case strings.Contains(name, "friendly"), strings.Contains(name, "casual"):
		return StyleFriendly
	case strings.Contains(name, "professional"), strings.Contains(name, "formal"):
		return StyleProfessional
	default:
		return StyleNeutral
	}
}

// footerIntents is the restricted set of intents where an encouragement
// footer reads naturally. Appending it to every reply sounds robotic.
var footerIntents = map[string]struct{}{
	"fallback":        {},
	"contact_support": {},
}

// closings holds the per-style, per-language closing sentence. English
// is the fallback when a language has no variant.
var closings = map[Style]map[string]string{
	StyleFriendly: {
		"en": "Let me know if you want anything else!",
		"fr": "N'hésitez pas si vous avez besoin d'autre chose !",
	},
	StyleProfessional: {
		"en": "Please let me know if you need further assistance.",
		"fr": "N'hésitez pas à me contacter pour toute assistance supplémentaire.",
	},
}

// ApplyStyle appends the style's closing sentence when the intent is in
// the footer set. Neutral style and out-of-set intents pass through.
func ApplyStyle(text string, style Style, intent, language string) string {
	if text == "" || style == StyleNeutral {
		return text
	}
	if _, ok := footerIntents[intent]; !ok {
		return text
	}

	perLanguage := closings[style]
	closing, ok := perLanguage[language]
	if !ok {
		closing = perLanguage["en"]
	}
	return text + " " + closing
}
