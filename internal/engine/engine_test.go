package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/internal/template"
	"github.com/botforge-ai/response-engine/pkg/logger"
)

type stubClassifier struct {
	results map[string]model.Classification
}

func (s stubClassifier) Classify(_ context.Context, utterance string) model.Classification {
	if c, ok := s.results[utterance]; ok {
		if c.Entities == nil {
			c.Entities = []model.Entity{}
		}
		return c
	}
	return model.FallbackClassification()
}

type stubDetector struct {
	lang string
	conf float64
}

func (s stubDetector) Detect(string) (string, float64) { return s.lang, s.conf }

type fixtureStore struct {
	profiles      map[string]*model.CompanyProfile
	chatbots      map[string]*model.ChatbotConfig
	personalities map[string]*model.Personality
	err           error
}

func (f *fixtureStore) GetProfile(_ context.Context, tenantID string) (*model.CompanyProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[tenantID], nil
}

func (f *fixtureStore) GetChatbot(_ context.Context, tenantID string) (*model.ChatbotConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chatbots[tenantID], nil
}

func (f *fixtureStore) GetPersonality(_ context.Context, id string) (*model.Personality, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.personalities[id], nil
}

type memHistory struct {
	turns    []model.ConversationTurn
	writeErr error
}

func (m *memHistory) SessionTurns(_ context.Context, tenantID, _, sessionID string, limit int) ([]model.ConversationTurn, error) {
	var out []model.ConversationTurn
	for _, t := range m.turns {
		if t.TenantID == tenantID && t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memHistory) AppendTurn(_ context.Context, turn *model.ConversationTurn) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.turns = append(m.turns, *turn)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func acmeFixtures(fields map[string]string) *fixtureStore {
	return &fixtureStore{
		profiles: map[string]*model.CompanyProfile{
			"acme": {
				TenantID: "acme",
				Name:     "Acme Diner",
				Industry: "restaurant",
				Fields:   fields,
			},
		},
		chatbots: map[string]*model.ChatbotConfig{
			"acme": {
				BotID:         "bot-1",
				TenantID:      "acme",
				Name:          "Acme Assistant",
				PersonalityID: "p1",
			},
		},
		personalities: map[string]*model.Personality{
			"p1": {ID: "p1", Name: "Friendly Bot"},
		},
	}
}

func newTestEngine(classifier Classifier, detector Detector, fixtures *fixtureStore, history History) *Engine {
	store := template.NewMemoryStore()
	resolver := template.NewResolver(store, store)
	return New(classifier, detector, resolver, fixtures, fixtures, fixtures, history, DefaultThresholds(), logger.NewNop())
}

func TestChatResolvesBuiltinTemplate(t *testing.T) {
	fixtures := acmeFixtures(map[string]string{"contact_email": "hello@acme.example"})
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"hi": {Intent: "greet", Confidence: 0.92},
		}},
		stubDetector{lang: "en", conf: 0.6},
		fixtures,
		&memHistory{},
	)

	result, err := eng.Chat(context.Background(), "acme", "hi", "s1", "u1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, "greet", result.Intent)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)
	// greet is not a footer intent, so the friendly closing is absent.
	assert.Equal(t, "Hi! Welcome to Acme Diner 😊 How can I help you today?", result.Reply)
	assert.Equal(t, "en", result.Language)
	assert.Equal(t, []string{"Business hours", "Location", "Pricing", "Contact support", "Make a booking"}, result.QuickReplies)
	require.NotNil(t, result.Chatbot)
	assert.Equal(t, "Acme Assistant", result.Chatbot.Name)
	assert.Equal(t, "Friendly Bot", result.Chatbot.Personality)
}

func TestChatValidation(t *testing.T) {
	eng := newTestEngine(stubClassifier{}, stubDetector{lang: "en", conf: 0.6}, acmeFixtures(nil), nil)

	_, err := eng.Chat(context.Background(), "", "hi", "", "")
	assert.ErrorIs(t, err, ErrMissingTenant)

	_, err = eng.Chat(context.Background(), "acme", "   ", "", "")
	assert.ErrorIs(t, err, ErrMissingMessage)
}

func TestChatUnknownTenant(t *testing.T) {
	eng := newTestEngine(stubClassifier{}, stubDetector{lang: "en", conf: 0.6}, &fixtureStore{}, nil)

	_, err := eng.Chat(context.Background(), "ghost", "hi", "", "")
	assert.ErrorIs(t, err, ErrTenantNotFound)

	_, err = eng.Welcome(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestChatLanguageGate(t *testing.T) {
	fixtures := acmeFixtures(nil)
	classifier := stubClassifier{results: map[string]model.Classification{
		"bonjour": {Intent: "greet", Confidence: 0.9},
	}}

	// Below the gate the turn stays English.
	eng := newTestEngine(classifier, stubDetector{lang: "fr", conf: 0.3}, fixtures, nil)
	result, err := eng.Chat(context.Background(), "acme", "bonjour", "", "")
	require.NoError(t, err)
	assert.Equal(t, "en", result.Language)
	assert.Equal(t, "fr", result.DetectedLanguage)
	assert.InDelta(t, 0.3, result.LanguageConfidence, 1e-9)

	// At or above the gate the detection is honored, down to the
	// built-in French quick replies.
	eng = newTestEngine(classifier, stubDetector{lang: "fr", conf: 0.85}, fixtures, nil)
	result, err = eng.Chat(context.Background(), "acme", "bonjour", "", "")
	require.NoError(t, err)
	assert.Equal(t, "fr", result.Language)
	assert.Contains(t, result.QuickReplies, "Heures d'ouverture")
}

func TestReinterpretationAdopted(t *testing.T) {
	fixtures := acmeFixtures(map[string]string{"contact_email": "hello@acme.example"})
	history := &memHistory{turns: []model.ConversationTurn{
		{TenantID: "acme", SessionID: "s1", Sender: model.SenderUser, Text: "do you have vegetarian options"},
		{TenantID: "acme", SessionID: "s1", Sender: model.SenderBot, Text: "Yes, we do."},
	}}
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"how much is it": {Intent: model.IntentFallback, Confidence: 0.2},
			"do you have vegetarian options\nhow much is it": {Intent: "pricing", Confidence: 0.8},
		}},
		stubDetector{lang: "en", conf: 0.6},
		fixtures,
		history,
	)

	result, err := eng.Chat(context.Background(), "acme", "how much is it", "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "pricing", result.Intent)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
}

func TestReinterpretationRejectedOnMargin(t *testing.T) {
	fixtures := acmeFixtures(map[string]string{"contact_email": "hello@acme.example"})
	history := &memHistory{turns: []model.ConversationTurn{
		{TenantID: "acme", SessionID: "s1", Sender: model.SenderUser, Text: "what dishes do you serve"},
	}}
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			// Weak original; the retry clears the floor but not the
			// improvement margin, so the original stands.
			"that one": {Intent: model.IntentFallback, Confidence: 0.42},
			"what dishes do you serve\nthat one": {Intent: "menu", Confidence: 0.46},
		}},
		stubDetector{lang: "en", conf: 0.6},
		fixtures,
		history,
	)

	result, err := eng.Chat(context.Background(), "acme", "that one", "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, model.IntentFallback, result.Intent)
	assert.InDelta(t, 0.42, result.Confidence, 1e-9)
}

func TestReinterpretationSkippedWithoutContext(t *testing.T) {
	fixtures := acmeFixtures(map[string]string{"contact_email": "hello@acme.example"})
	// Only the current message repeated in history: nothing to prepend.
	history := &memHistory{turns: []model.ConversationTurn{
		{TenantID: "acme", SessionID: "s1", Sender: model.SenderUser, Text: "How Much Is It"},
	}}
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"how much is it": {Intent: model.IntentFallback, Confidence: 0.1},
		}},
		stubDetector{lang: "en", conf: 0.6},
		fixtures,
		history,
	)

	result, err := eng.Chat(context.Background(), "acme", "how much is it", "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, model.IntentFallback, result.Intent)
}

func TestRefinementPromotesPricing(t *testing.T) {
	fixtures := acmeFixtures(map[string]string{
		"contact_email": "hello@acme.example",
		"price_range":   "$10-$20",
	})
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"how expensive are you": {Intent: "pricing", Confidence: 0.9},
		}},
		stubDetector{lang: "en", conf: 0.6},
		fixtures,
		nil,
	)

	result, err := eng.Chat(context.Background(), "acme", "how expensive are you", "", "")
	require.NoError(t, err)
	assert.Equal(t, "price_range", result.Intent)
	assert.Equal(t, "Our typical price range is $10-$20. For more details, contact us at hello@acme.example.", result.Reply)
}

func TestRefinementDemotesSeatingCapacity(t *testing.T) {
	fixtures := acmeFixtures(map[string]string{
		"contact_email": "hello@acme.example",
		"contact_phone": "+1 555 0100",
	})
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"how many people fit": {Intent: "seating_capacity", Confidence: 0.9},
		}},
		stubDetector{lang: "en", conf: 0.6},
		fixtures,
		nil,
	)

	result, err := eng.Chat(context.Background(), "acme", "how many people fit", "", "")
	require.NoError(t, err)
	// Without a seating_capacity field the specialized template would
	// render an unresolved placeholder; the intent generalizes instead.
	assert.Equal(t, "contact_support", result.Intent)
	// contact_support is a footer intent, so the friendly closing lands.
	assert.Equal(t, "You can reach us at hello@acme.example or +1 555 0100. Let me know if you want anything else!", result.Reply)
}

func TestWelcomeCustomMessage(t *testing.T) {
	fixtures := acmeFixtures(nil)
	fixtures.chatbots["acme"].WelcomeMessage = "Welcome to {{company_name}}!"
	fixtures.chatbots["acme"].AllowEmojis = boolPtr(true)
	eng := newTestEngine(stubClassifier{}, stubDetector{lang: "en", conf: 0.6}, fixtures, nil)

	result, err := eng.Welcome(context.Background(), "acme", "")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "greet", result.Intent)
	assert.InDelta(t, 1, result.Confidence, 1e-9)
	assert.Equal(t, "en", result.Language)
	// Hand-written welcome is verbatim: no footer, no injected emoji.
	assert.Equal(t, "Welcome to Acme Diner!", result.Reply)
}

func TestWelcomePersistsBotTurn(t *testing.T) {
	history := &memHistory{}
	eng := newTestEngine(stubClassifier{}, stubDetector{lang: "en", conf: 0.6}, acmeFixtures(nil), history)

	result, err := eng.Welcome(context.Background(), "acme", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Hi! Welcome to Acme Diner 😊 How can I help you today?", result.Reply)

	require.Len(t, history.turns, 1)
	turn := history.turns[0]
	assert.Equal(t, model.SenderBot, turn.Sender)
	assert.Equal(t, "bot-1", turn.BotID)
	assert.Equal(t, result.Reply, turn.Text)
	assert.Equal(t, "greet", turn.Intent)
	assert.NotEmpty(t, turn.ID)
	assert.False(t, turn.CreatedAt.IsZero())
}

func TestChatPersistsExchange(t *testing.T) {
	history := &memHistory{}
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"hi": {Intent: "greet", Confidence: 0.92},
		}},
		stubDetector{lang: "en", conf: 0.6},
		acmeFixtures(nil),
		history,
	)

	result, err := eng.Chat(context.Background(), "acme", "hi", "s1", "u1")
	require.NoError(t, err)

	require.Len(t, history.turns, 2)
	assert.Equal(t, model.SenderUser, history.turns[0].Sender)
	assert.Equal(t, "hi", history.turns[0].Text)
	assert.Equal(t, "u1", history.turns[0].SenderUserID)
	assert.Equal(t, model.SenderBot, history.turns[1].Sender)
	assert.Equal(t, result.Reply, history.turns[1].Text)
}

func TestChatSurvivesHistoryWriteFailure(t *testing.T) {
	history := &memHistory{writeErr: errors.New("stream unavailable")}
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"hi": {Intent: "greet", Confidence: 0.92},
		}},
		stubDetector{lang: "en", conf: 0.6},
		acmeFixtures(nil),
		history,
	)

	result, err := eng.Chat(context.Background(), "acme", "hi", "s1", "u1")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.NotEmpty(t, result.Reply)
}

func TestChatWithoutChatbotSkipsPersistence(t *testing.T) {
	history := &memHistory{}
	// Profile-only tenant: servable, but there is no chatbot identity
	// to key a transcript on, so nothing is persisted.
	fixtures := &fixtureStore{profiles: map[string]*model.CompanyProfile{
		"acme": {TenantID: "acme", Name: "Acme Diner", Industry: "restaurant"},
	}}
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"hi": {Intent: "greet", Confidence: 0.92},
		}},
		stubDetector{lang: "en", conf: 0.6},
		fixtures,
		history,
	)

	result, err := eng.Chat(context.Background(), "acme", "hi", "s1", "u1")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Nil(t, result.Chatbot)
	assert.Empty(t, history.turns)

	welcome, err := eng.Welcome(context.Background(), "acme", "s1")
	require.NoError(t, err)
	assert.True(t, welcome.OK)
	assert.Empty(t, history.turns)
}

func TestChatWithoutSessionSkipsPersistence(t *testing.T) {
	history := &memHistory{}
	eng := newTestEngine(
		stubClassifier{results: map[string]model.Classification{
			"hi": {Intent: "greet", Confidence: 0.92},
		}},
		stubDetector{lang: "en", conf: 0.6},
		acmeFixtures(nil),
		history,
	)

	_, err := eng.Chat(context.Background(), "acme", "hi", "", "")
	require.NoError(t, err)
	assert.Empty(t, history.turns)
}

func TestRefineIntentTable(t *testing.T) {
	withPrice := &model.CompanyProfile{Fields: map[string]string{"price_range": "$$"}}
	without := &model.CompanyProfile{Fields: map[string]string{}}

	assert.Equal(t, "price_range", refineIntent("pricing", withPrice))
	assert.Equal(t, "pricing", refineIntent("pricing", without))
	assert.Equal(t, "pricing", refineIntent("price_range", without))
	assert.Equal(t, "contact_support", refineIntent("seating_capacity", without))
	assert.Equal(t, "menu", refineIntent("menu", without))
	// Nil profile reads as all-empty fields.
	assert.Equal(t, "pricing", refineIntent("price_range", nil))
}
