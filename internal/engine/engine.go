package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/internal/reply"
	"github.com/botforge-ai/response-engine/internal/template"
	"github.com/botforge-ai/response-engine/pkg/logger"
	"github.com/botforge-ai/response-engine/pkg/metrics"
)

var tracer = otel.Tracer("github.com/botforge-ai/response-engine/internal/engine")

const (
	greetIntent = "greet"

	// welcomeLanguage pins the language of a session's opening turn;
	// there is no user utterance to detect from yet.
	welcomeLanguage = "en"
)

// Thresholds are the tunable decision points of turn orchestration.
type Thresholds struct {
	// LanguageGate is the minimum detector confidence to honor a
	// non-English detection.
	LanguageGate float64

	// ReinterpretFloor is the confidence below which a classification
	// is considered weak, and the minimum a re-interpretation must
	// reach to be adopted.
	ReinterpretFloor float64

	// ReinterpretMargin is how much a re-interpretation must beat the
	// original confidence by.
	ReinterpretMargin float64

	// HistoryWindow caps how many prior turns are consulted.
	HistoryWindow int
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LanguageGate:      0.40,
		ReinterpretFloor:  0.45,
		ReinterpretMargin: 0.05,
		HistoryWindow:     12,
	}
}

// Engine orchestrates one conversation turn: classify, detect
// language, re-interpret against context, refine, resolve, post-process
// and persist.
type Engine struct {
	classifier    Classifier
	detector      Detector
	resolver      *template.Resolver
	profiles      ProfileStore
	chatbots      ChatbotStore
	personalities PersonalityStore
	history       History
	thresholds    Thresholds
	logger        *logger.Logger
}

// New creates an engine. A nil history gets the no-op store.
func New(
	classifier Classifier,
	detector Detector,
	resolver *template.Resolver,
	profiles ProfileStore,
	chatbots ChatbotStore,
	personalities PersonalityStore,
	history History,
	thresholds Thresholds,
	log *logger.Logger,
) *Engine {
	if history == nil {
		history = NopHistory{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		classifier:    classifier,
		detector:      detector,
		resolver:      resolver,
		profiles:      profiles,
		chatbots:      chatbots,
		personalities: personalities,
		history:       history,
		thresholds:    thresholds,
		logger:        log,
	}
}

// Chat resolves one user message to a reply.
//
// Store lookup failures degrade the turn rather than fail it: a turn
// with no profile still answers from built-in templates. Only a tenant
// with neither profile nor chatbot is rejected.
func (e *Engine) Chat(ctx context.Context, tenantID, message, sessionID, userID string) (*model.ChatResult, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrMissingTenant
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrMissingMessage
	}

	ctx, span := tracer.Start(ctx, "engine.Chat")
	defer span.End()
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	log := e.logger.WithTurn(tenantID, sessionID)

	profile := e.loadProfile(ctx, tenantID, log)
	chatbot := e.loadChatbot(ctx, tenantID, log)
	if profile == nil && chatbot == nil {
		return nil, ErrTenantNotFound
	}
	personality := e.loadPersonality(ctx, chatbot, log)

	cls := e.classifier.Classify(ctx, message)

	detected, langConf := e.detector.Detect(message)
	language := welcomeLanguage
	if langConf >= e.thresholds.LanguageGate {
		language = detected
	}

	cls = e.reinterpret(ctx, tenantID, chatbot, sessionID, message, cls, log)

	intent := refineIntent(cls.Intent, profile)

	industry := ""
	if profile != nil {
		industry = profile.Industry
	}

	text := e.resolver.Resolve(ctx, tenantID, industry, intent, language)
	quickReplies := e.resolver.ResolveQuickReplies(ctx, tenantID, industry, intent, language)

	text = reply.Process(reply.Input{
		Text:        text,
		Intent:      intent,
		Language:    language,
		Profile:     profile,
		Chatbot:     chatbot,
		Personality: personality,
	})

	e.persistExchange(ctx, tenantID, chatbot, sessionID, userID, message, text, intent, log)

	span.SetAttributes(
		attribute.String("intent", intent),
		attribute.Float64("confidence", cls.Confidence),
		attribute.String("language", language),
	)

	metrics.RecordTurn(tenantID, intent, language, cls.Confidence)
	log.Debug("turn resolved",
		zap.String("intent", intent),
		zap.Float64("confidence", cls.Confidence),
		zap.String("language", language),
	)

	return &model.ChatResult{
		OK:                 true,
		Intent:             intent,
		Confidence:         cls.Confidence,
		Entities:           cls.Entities,
		Reply:              text,
		QuickReplies:       quickReplies,
		Language:           language,
		LanguageConfidence: langConf,
		DetectedLanguage:   detected,
		Chatbot:            botInfo(chatbot, personality),
	}, nil
}

// Welcome produces the opening message of a session. There is no user
// utterance: the turn is always English, always the greeting intent,
// always full confidence.
func (e *Engine) Welcome(ctx context.Context, tenantID, sessionID string) (*model.ChatResult, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrMissingTenant
	}

	ctx, span := tracer.Start(ctx, "engine.Welcome")
	defer span.End()
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	log := e.logger.WithTurn(tenantID, sessionID)

	profile := e.loadProfile(ctx, tenantID, log)
	chatbot := e.loadChatbot(ctx, tenantID, log)
	if profile == nil && chatbot == nil {
		return nil, ErrTenantNotFound
	}
	personality := e.loadPersonality(ctx, chatbot, log)

	industry := ""
	if profile != nil {
		industry = profile.Industry
	}

	text := e.resolver.Resolve(ctx, tenantID, industry, greetIntent, welcomeLanguage)
	quickReplies := e.resolver.ResolveQuickReplies(ctx, tenantID, industry, greetIntent, welcomeLanguage)

	text = reply.Process(reply.Input{
		Text:        text,
		Intent:      greetIntent,
		Language:    welcomeLanguage,
		Profile:     profile,
		Chatbot:     chatbot,
		Personality: personality,
	})

	if sessionID != "" && botID(chatbot) != "" {
		e.persistTurn(ctx, &model.ConversationTurn{
			ID:        uuid.Must(uuid.NewV7()).String(),
			TenantID:  tenantID,
			BotID:     botID(chatbot),
			SessionID: sessionID,
			Sender:    model.SenderBot,
			Text:      text,
			Intent:    greetIntent,
			CreatedAt: time.Now().UTC(),
		}, log)
	}

	metrics.RecordTurn(tenantID, greetIntent, welcomeLanguage, 1)

	return &model.ChatResult{
		OK:                 true,
		Intent:             greetIntent,
		Confidence:         1,
		Entities:           []model.Entity{},
		Reply:              text,
		QuickReplies:       quickReplies,
		Language:           welcomeLanguage,
		LanguageConfidence: 1,
		Chatbot:            botInfo(chatbot, personality),
	}, nil
}

// reinterpret retries a weak classification with the previous user
// message prepended. The retry is adopted only when it is decisively
// better; otherwise the original stands.
func (e *Engine) reinterpret(ctx context.Context, tenantID string, chatbot *model.ChatbotConfig, sessionID, message string, cls model.Classification, log *logger.Logger) model.Classification {
	weak := cls.Intent == model.IntentFallback || cls.Confidence < e.thresholds.ReinterpretFloor
	if !weak || sessionID == "" {
		return cls
	}

	turns, err := e.history.SessionTurns(ctx, tenantID, botID(chatbot), sessionID, e.thresholds.HistoryWindow)
	if err != nil {
		log.Warn("history read failed", zap.Error(err))
		metrics.RecordReinterpretation("skipped")
		return cls
	}

	previous := lastUserMessage(turns, message)
	if previous == "" {
		metrics.RecordReinterpretation("skipped")
		return cls
	}

	retry := e.classifier.Classify(ctx, previous+"\n"+message)
	if retry.Intent != model.IntentFallback &&
		retry.Confidence >= e.thresholds.ReinterpretFloor &&
		retry.Confidence >= cls.Confidence+e.thresholds.ReinterpretMargin {
		log.Debug("re-interpretation adopted",
			zap.String("from", cls.Intent),
			zap.String("to", retry.Intent),
			zap.Float64("confidence", retry.Confidence),
		)
		metrics.RecordReinterpretation("adopted")
		return retry
	}

	metrics.RecordReinterpretation("rejected")
	return cls
}

// lastUserMessage returns the most recent prior user message that is
// not just a repetition of the current one.
func lastUserMessage(turns []model.ConversationTurn, current string) string {
	normalized := strings.ToLower(strings.TrimSpace(current))
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		if t.Sender != model.SenderUser {
			continue
		}
		text := strings.TrimSpace(t.Text)
		if text == "" || strings.ToLower(text) == normalized {
			continue
		}
		return text
	}
	return ""
}

// persistExchange appends the user turn and the bot turn. A turn is
// only durable when both a session and a chatbot identity exist;
// profile-only tenants chat without a transcript. Failures are logged
// and counted; the reply has already been produced and is returned
// regardless.
func (e *Engine) persistExchange(ctx context.Context, tenantID string, chatbot *model.ChatbotConfig, sessionID, userID, message, replyText, intent string, log *logger.Logger) {
	if sessionID == "" || botID(chatbot) == "" {
		return
	}
	now := time.Now().UTC()
	e.persistTurn(ctx, &model.ConversationTurn{
		ID:           uuid.Must(uuid.NewV7()).String(),
		TenantID:     tenantID,
		BotID:        botID(chatbot),
		SessionID:    sessionID,
		Sender:       model.SenderUser,
		SenderUserID: userID,
		Text:         message,
		Intent:       intent,
		CreatedAt:    now,
	}, log)
	e.persistTurn(ctx, &model.ConversationTurn{
		ID:        uuid.Must(uuid.NewV7()).String(),
		TenantID:  tenantID,
		BotID:     botID(chatbot),
		SessionID: sessionID,
		Sender:    model.SenderBot,
		Text:      replyText,
		Intent:    intent,
		CreatedAt: now,
	}, log)
}

func (e *Engine) persistTurn(ctx context.Context, turn *model.ConversationTurn, log *logger.Logger) {
	if err := e.history.AppendTurn(ctx, turn); err != nil {
		metrics.PersistenceFailures.Inc()
		log.Warn("turn not persisted",
			zap.String("sender", string(turn.Sender)),
			zap.Error(err),
		)
	}
}

func (e *Engine) loadProfile(ctx context.Context, tenantID string, log *logger.Logger) *model.CompanyProfile {
	profile, err := e.profiles.GetProfile(ctx, tenantID)
	if err != nil {
		log.Warn("profile lookup failed", zap.Error(err))
		return nil
	}
	return profile
}

func (e *Engine) loadChatbot(ctx context.Context, tenantID string, log *logger.Logger) *model.ChatbotConfig {
	chatbot, err := e.chatbots.GetChatbot(ctx, tenantID)
	if err != nil {
		log.Warn("chatbot lookup failed", zap.Error(err))
		return nil
	}
	return chatbot
}

func (e *Engine) loadPersonality(ctx context.Context, chatbot *model.ChatbotConfig, log *logger.Logger) *model.Personality {
	if chatbot == nil || chatbot.PersonalityID == "" {
		return nil
	}
	personality, err := e.personalities.GetPersonality(ctx, chatbot.PersonalityID)
	if err != nil {
		log.Warn("personality lookup failed",
			zap.String("personality_id", chatbot.PersonalityID),
			zap.Error(err),
		)
		return nil
	}
	return personality
}

func botID(chatbot *model.ChatbotConfig) string {
	if chatbot == nil {
		return ""
	}
	return chatbot.BotID
}

func botInfo(chatbot *model.ChatbotConfig, personality *model.Personality) *model.BotInfo {
	if chatbot == nil {
		return nil
	}
	info := &model.BotInfo{
		Name:            chatbot.Name,
		PrimaryLanguage: chatbot.PrimaryLanguage,
		AllowEmojis:     chatbot.AllowEmojis,
	}
	if personality != nil {
		info.Personality = personality.Name
	}
	return info
}
