package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/botforge-ai/response-engine/internal/model"
)

const (
	// StreamName is the name of the conversation history stream.
	StreamName = "CHAT_HISTORY"

	// SubjectPrefix is the prefix for all history subjects.
	SubjectPrefix = "chat"

	// fetchBatchSize is how many stored turns one consumer fetch pulls.
	fetchBatchSize = 256

	// maxScan bounds how far a single read walks a session or tenant.
	maxScan = 4096
)

// HistoryStore persists conversation turns in a JetStream stream, one
// message per turn. Subjects are
// chat.<tenant>.<bot>.<session>.<sender>, so session reads and
// tenant-wide reads are both filter-subject lookups.
type HistoryStore struct {
	client *Client
}

// NewHistoryStore creates a history store over an established client.
func NewHistoryStore(client *Client) *HistoryStore {
	return &HistoryStore{client: client}
}

// EnsureStream creates the history stream if it does not exist yet.
func (s *HistoryStore) EnsureStream(ctx context.Context) error {
	js := s.client.JetStream()

	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      365 * 24 * time.Hour,
		MaxBytes:    100 * 1024 * 1024 * 1024,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		DenyDelete:  true,
		DenyPurge:   true,
		Description: "Conversation turns, one message per turn",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// TurnSubject returns the subject a turn is published to. Empty id
// segments become "-" so the subject stays well-formed.
func TurnSubject(tenantID, botID, sessionID string, sender model.Sender) string {
	return fmt.Sprintf("%s.%s.%s.%s.%s",
		SubjectPrefix,
		subjectToken(tenantID),
		subjectToken(botID),
		subjectToken(sessionID),
		sender,
	)
}

// sessionFilter matches every turn of one session.
func sessionFilter(tenantID, botID, sessionID string) string {
	bot := subjectToken(botID)
	if botID == "" {
		bot = "*"
	}
	return fmt.Sprintf("%s.%s.%s.%s.>", SubjectPrefix, subjectToken(tenantID), bot, subjectToken(sessionID))
}

// tenantFilter matches every turn of one tenant.
func tenantFilter(tenantID string) string {
	return fmt.Sprintf("%s.%s.>", SubjectPrefix, subjectToken(tenantID))
}

var subjectSanitizer = strings.NewReplacer(
	".", "_",
	" ", "_",
	"*", "_",
	">", "_",
)

func subjectToken(s string) string {
	if s == "" {
		return "-"
	}
	return subjectSanitizer.Replace(s)
}

// AppendTurn publishes a turn and waits for the stream's ack, so a
// subsequent read in the same session observes it.
func (s *HistoryStore) AppendTurn(ctx context.Context, turn *model.ConversationTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	subject := TurnSubject(turn.TenantID, turn.BotID, turn.SessionID, turn.Sender)
	if _, err := s.client.JetStream().Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish turn: %w", err)
	}
	return nil
}

// SessionTurns returns up to limit most recent turns of a session in
// chronological order.
func (s *HistoryStore) SessionTurns(ctx context.Context, tenantID, botID, sessionID string, limit int) ([]model.ConversationTurn, error) {
	turns, err := s.fetchTurns(ctx, sessionFilter(tenantID, botID, sessionID))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

// TenantTurns returns up to limit most recent turns across all of a
// tenant's sessions, chronological order. Used by the history search
// and export endpoints.
func (s *HistoryStore) TenantTurns(ctx context.Context, tenantID string, limit int) ([]model.ConversationTurn, error) {
	turns, err := s.fetchTurns(ctx, tenantFilter(tenantID))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

// fetchTurns drains a filter subject through an ephemeral consumer.
// The walk is bounded by maxScan; the tail of the stream wins when the
// bound is hit.
func (s *HistoryStore) fetchTurns(ctx context.Context, filterSubject string) ([]model.ConversationTurn, error) {
	js := s.client.JetStream()

	consumer, err := js.CreateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		FilterSubject: filterSubject,
		AckPolicy:     jetstream.AckNonePolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	var turns []model.ConversationTurn
	for len(turns) < maxScan {
		batch, err := consumer.Fetch(fetchBatchSize, jetstream.FetchMaxWait(2*time.Second))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch turns: %w", err)
		}

		count := 0
		for msg := range batch.Messages() {
			count++
			var turn model.ConversationTurn
			if err := json.Unmarshal(msg.Data(), &turn); err != nil {
				s.client.logger.Warn("skipping malformed history message",
					zap.String("subject", msg.Subject()),
					zap.Error(err),
				)
				continue
			}
			turns = append(turns, turn)
		}
		if batch.Error() != nil && batch.Error() != context.DeadlineExceeded {
			return nil, fmt.Errorf("batch error: %w", batch.Error())
		}
		if count < fetchBatchSize {
			break
		}
	}

	return turns, nil
}
