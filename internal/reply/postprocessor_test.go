package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/botforge-ai/response-engine/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func acmeProfile() *model.CompanyProfile {
	return &model.CompanyProfile{
		TenantID: "acme",
		Name:     "Acme Diner",
		Industry: "restaurant",
		Fields: map[string]string{
			"contact_email":  "hello@acme.example",
			"business_hours": "9am-9pm",
		},
	}
}

func TestRenderPlaceholders(t *testing.T) {
	profile := acmeProfile()

	out := RenderPlaceholders("Welcome to {{company_name}}, open {{business_hours}}.", profile)
	assert.Equal(t, "Welcome to Acme Diner, open 9am-9pm.", out)

	// Unresolved placeholders stay verbatim.
	out = RenderPlaceholders("Seats: {{seating_capacity}}", profile)
	assert.Equal(t, "Seats: {{seating_capacity}}", out)

	// Nil profile never panics.
	out = RenderPlaceholders("Hi {{company_name}}", nil)
	assert.Equal(t, "Hi {{company_name}}", out)
}

func TestClassifyStyle(t *testing.T) {
	assert.Equal(t, StyleFriendly, ClassifyStyle("Friendly Bot"))
	assert.Equal(t, StyleFriendly, ClassifyStyle("casual helper"))
	assert.Equal(t, StyleProfessional, ClassifyStyle("Professional Concierge"))
	assert.Equal(t, StyleProfessional, ClassifyStyle("Formal Assistant"))
	assert.Equal(t, StyleNeutral, ClassifyStyle("Quirky Robot"))
	assert.Equal(t, StyleNeutral, ClassifyStyle(""))
}

func TestApplyStyleRestrictedToFooterIntents(t *testing.T) {
	// Footer appends for fallback and contact_support only.
	out := ApplyStyle("Sorry, not sure.", StyleFriendly, "fallback", "en")
	assert.Equal(t, "Sorry, not sure. Let me know if you want anything else!", out)

	out = ApplyStyle("Hi there!", StyleFriendly, "greet", "en")
	assert.Equal(t, "Hi there!", out)

	out = ApplyStyle("Reach us anytime.", StyleProfessional, "contact_support", "en")
	assert.Equal(t, "Reach us anytime. Please let me know if you need further assistance.", out)
}

func TestApplyStyleLanguageFallback(t *testing.T) {
	out := ApplyStyle("Désolé.", StyleFriendly, "fallback", "fr")
	assert.Equal(t, "Désolé. N'hésitez pas si vous avez besoin d'autre chose !", out)

	// No Chinese closing configured; English closes the reply.
	out = ApplyStyle("抱歉。", StyleFriendly, "fallback", "zh")
	assert.Equal(t, "抱歉。 Let me know if you want anything else!", out)
}

func TestEmojiHelpers(t *testing.T) {
	assert.True(t, ContainsEmoji("hi 🙂"))
	assert.False(t, ContainsEmoji("hi there"))

	assert.Equal(t, "hello", StripEmojis("hello 🙂"))
	assert.Equal(t, "open at nine", StripEmojis("🍽️ open at nine ✨"))
	assert.Equal(t, "", StripEmojis(""))

	assert.Equal(t, "hello 🙂", EnsureEmoji("hello"))
	assert.Equal(t, "hello 😊", EnsureEmoji("hello 😊"))
	assert.Equal(t, "", EnsureEmoji(""))
}

func TestStripEmojisKeepsNewlines(t *testing.T) {
	in := "Here are our hours: 🕘\n- Mon-Fri: 9am-9pm\n- Sat: 10am-6pm ✨"
	assert.Equal(t, "Here are our hours:\n- Mon-Fri: 9am-9pm\n- Sat: 10am-6pm", StripEmojis(in))
}

func TestEmojiRoundTrip(t *testing.T) {
	original := "Our hours are 9am-9pm."
	ensured := EnsureEmoji(original)
	assert.NotEqual(t, original, ensured)
	assert.Equal(t, original, StripEmojis(ensured))
}

func TestProcessCustomWelcomeOverride(t *testing.T) {
	chatbot := &model.ChatbotConfig{
		WelcomeMessage: "Welcome to {{company_name}}!",
		AllowEmojis:    boolPtr(true),
		PersonalityID:  "p1",
	}

	out := Process(Input{
		Text:        "Hi! Welcome to {{company_name}} 😊 How can I help you today?",
		Intent:      "greet",
		Language:    "en",
		Profile:     acmeProfile(),
		Chatbot:     chatbot,
		Personality: &model.Personality{ID: "p1", Name: "Friendly Bot"},
	})

	// Override replaces the template, skips styling and skips
	// ensure-emoji: the hand-written greeting is verbatim.
	assert.Equal(t, "Welcome to Acme Diner!", out)
}

func TestProcessStripAppliesToCustomWelcome(t *testing.T) {
	chatbot := &model.ChatbotConfig{
		WelcomeMessage: "Welcome! 🎉",
		AllowEmojis:    boolPtr(false),
	}

	out := Process(Input{
		Text:     "template text",
		Intent:   "greet",
		Language: "en",
		Profile:  acmeProfile(),
		Chatbot:  chatbot,
	})
	assert.Equal(t, "Welcome!", out)
}

func TestProcessPersonalityAndEmoji(t *testing.T) {
	out := Process(Input{
		Text:        "Sorry — I’m not sure about that. You can contact us at {{contact_email}}.",
		Intent:      "fallback",
		Language:    "en",
		Profile:     acmeProfile(),
		Chatbot:     &model.ChatbotConfig{AllowEmojis: boolPtr(true)},
		Personality: &model.Personality{Name: "Friendly Bot"},
	})
	assert.Equal(t, "Sorry — I’m not sure about that. You can contact us at hello@acme.example. Let me know if you want anything else! 🙂", out)
}

func TestProcessEmojiUnsetLeavesText(t *testing.T) {
	out := Process(Input{
		Text:    "No policy here.",
		Intent:  "location",
		Profile: acmeProfile(),
		Chatbot: &model.ChatbotConfig{},
	})
	assert.Equal(t, "No policy here.", out)
}

func TestProcessGreetingWithoutWelcomeGetsNoFooter(t *testing.T) {
	out := Process(Input{
		Text:        "Hi! Welcome to {{company_name}} 😊 How can I help you today?",
		Intent:      "greet",
		Language:    "en",
		Profile:     acmeProfile(),
		Chatbot:     &model.ChatbotConfig{},
		Personality: &model.Personality{Name: "Friendly Bot"},
	})
	// greet is not in the footer set; reply is the rendered template.
	assert.Equal(t, "Hi! Welcome to Acme Diner 😊 How can I help you today?", out)
}
