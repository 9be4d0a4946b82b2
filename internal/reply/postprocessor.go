package reply

import (
	"strings"

	"github.com/botforge-ai/response-engine/internal/model"
)

// greetingIntents are the intents eligible for the custom-welcome
// override.
var greetingIntents = map[string]struct{}{
	"greet":    {},
	"greeting": {},
}

// IsGreeting reports whether an intent is a greeting.
func IsGreeting(intent string) bool {
	_, ok := greetingIntents[intent]
	return ok
}

// Input carries everything the post-processor needs for one turn.
// Chatbot and Personality may be nil when the tenant has not
// configured them.
type Input struct {
	Text        string
	Intent      string
	Language    string
	Profile     *model.CompanyProfile
	Chatbot     *model.ChatbotConfig
	Personality *model.Personality
}

// Process applies the three post-processing transforms in order:
// custom-welcome override, personality styling, emoji policy.
//
// A configured custom welcome replaces the resolved text for greeting
// intents and is used verbatim afterwards: an organisation's
// hand-written greeting gets no styling and no injected emoji. The
// explicit strip policy still applies to it.
func Process(in Input) string {
	text := RenderPlaceholders(in.Text, in.Profile)

	overridden := false
	if in.Chatbot != nil && IsGreeting(in.Intent) && strings.TrimSpace(in.Chatbot.WelcomeMessage) != "" {
		text = RenderPlaceholders(in.Chatbot.WelcomeMessage, in.Profile)
		overridden = true
	}

	if !overridden && in.Personality != nil {
		text = ApplyStyle(text, ClassifyStyle(in.Personality.Name), in.Intent, in.Language)
	}

	if in.Chatbot != nil && in.Chatbot.AllowEmojis != nil {
		if !*in.Chatbot.AllowEmojis {
			text = StripEmojis(text)
		} else if !overridden {
			text = EnsureEmoji(text)
		}
	}

	return text
}
