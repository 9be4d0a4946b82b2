package engine

import (
	"context"

	"github.com/botforge-ai/response-engine/internal/model"
)

// Classifier maps an utterance to an intent. Implementations never
// fail: internal errors degrade to the fallback classification.
type Classifier interface {
	Classify(ctx context.Context, utterance string) model.Classification
}

// Detector guesses an utterance's language.
type Detector interface {
	Detect(text string) (lang string, confidence float64)
}

// ProfileStore looks up company profiles. A nil profile with a nil
// error means the tenant is unknown.
type ProfileStore interface {
	GetProfile(ctx context.Context, tenantID string) (*model.CompanyProfile, error)
}

// ChatbotStore looks up per-tenant chatbot settings.
type ChatbotStore interface {
	GetChatbot(ctx context.Context, tenantID string) (*model.ChatbotConfig, error)
}

// PersonalityStore looks up personalities by id.
type PersonalityStore interface {
	GetPersonality(ctx context.Context, personalityID string) (*model.Personality, error)
}

// HistoryReader reads prior turns of a session, most-recent-last.
type HistoryReader interface {
	SessionTurns(ctx context.Context, tenantID, botID, sessionID string, limit int) ([]model.ConversationTurn, error)
}

// HistoryWriter appends a turn to durable history. Each call is a
// distinct append; idempotency is not required.
type HistoryWriter interface {
	AppendTurn(ctx context.Context, turn *model.ConversationTurn) error
}

// History combines reading and writing conversation history.
type History interface {
	HistoryReader
	HistoryWriter
}

// NopHistory is the default History when no store is wired. It keeps
// the orchestrator's branching total: anonymous or unconfigured chat
// is servable, it just has no memory.
type NopHistory struct{}

// SessionTurns returns no history.
func (NopHistory) SessionTurns(context.Context, string, string, string, int) ([]model.ConversationTurn, error) {
	return nil, nil
}

// AppendTurn drops the turn.
func (NopHistory) AppendTurn(context.Context, *model.ConversationTurn) error {
	return nil
}
