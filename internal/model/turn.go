package model

import "time"

// Sender identifies who authored a conversation turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ConversationTurn is one inbound or outbound message in a session.
// The engine creates turns; durability belongs to the history store.
type ConversationTurn struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	BotID        string    `json:"bot_id,omitempty"`
	SessionID    string    `json:"session_id"`
	Sender       Sender    `json:"sender"`
	SenderUserID string    `json:"sender_user_id,omitempty"`
	Text         string    `json:"text"`
	Intent       string    `json:"intent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
