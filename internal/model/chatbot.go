package model

// ChatbotConfig holds per-tenant chatbot policy. AllowEmojis is
// tri-state: nil means the tenant has not expressed a preference.
type ChatbotConfig struct {
	BotID           string `json:"bot_id"`
	TenantID        string `json:"tenant_id"`
	Name            string `json:"name"`
	WelcomeMessage  string `json:"welcome_message,omitempty"`
	AllowEmojis     *bool  `json:"allow_emojis,omitempty"`
	PersonalityID   string `json:"personality_id,omitempty"`
	PrimaryLanguage string `json:"primary_language,omitempty"`
}

// Personality describes a configured bot personality. Only Name drives
// styling; Description and Type are surfaced to admin UIs.
type Personality struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}
