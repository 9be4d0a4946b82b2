package model

// IntentFallback is the label used when no intent can be determined.
const IntentFallback = "fallback"

// Entity is an extracted span within an utterance. The current
// classifier produces none; the slot is reserved for future extractors.
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Classification is the immutable result of one classifier invocation.
type Classification struct {
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   []Entity `json:"entities"`
}

// FallbackClassification returns the normalized no-result classification.
func FallbackClassification() Classification {
	return Classification{Intent: IntentFallback, Confidence: 0, Entities: []Entity{}}
}

// BotInfo echoes chatbot settings back to the caller alongside a reply.
type BotInfo struct {
	Name            string `json:"name,omitempty"`
	PrimaryLanguage string `json:"primary_language,omitempty"`
	AllowEmojis     *bool  `json:"allow_emojis,omitempty"`
	Personality     string `json:"personality,omitempty"`
}

// ChatResult is the structured reply for one turn.
type ChatResult struct {
	OK                 bool     `json:"ok"`
	Intent             string   `json:"intent"`
	Confidence         float64  `json:"confidence"`
	Entities           []Entity `json:"entities"`
	Reply              string   `json:"reply"`
	QuickReplies       []string `json:"quick_replies"`
	Language           string   `json:"language"`
	LanguageConfidence float64  `json:"language_confidence"`
	DetectedLanguage   string   `json:"detected_language,omitempty"`
	Chatbot            *BotInfo `json:"chatbot,omitempty"`
}
