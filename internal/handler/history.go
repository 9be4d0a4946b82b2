package handler

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/botforge-ai/response-engine/internal/middleware"
	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/pkg/logger"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// TurnSource reads persisted conversation turns. Implemented by the
// JetStream history store.
type TurnSource interface {
	SessionTurns(ctx context.Context, tenantID, botID, sessionID string, limit int) ([]model.ConversationTurn, error)
	TenantTurns(ctx context.Context, tenantID string, limit int) ([]model.ConversationTurn, error)
}

// HistoryHandler handles conversation history endpoints. A nil source
// means history persistence is disabled.
type HistoryHandler struct {
	source TurnSource
	logger *logger.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(source TurnSource, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{source: source, logger: log}
}

// SessionHistory handles GET /chat/history — the widget's transcript
// reload for one session.
func (h *HistoryHandler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		writeError(w, http.StatusServiceUnavailable, "history is not enabled")
		return
	}

	tenantID := r.URL.Query().Get("tenant_id")
	sessionID := r.URL.Query().Get("session_id")
	if err := middleware.ValidateTenantID(tenantID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID cannot be empty")
		return
	}

	turns, err := h.source.SessionTurns(r.Context(), tenantID, r.URL.Query().Get("bot_id"), sessionID, parseLimit(r))
	if err != nil {
		h.logger.Error("session history read failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"turns": emptyIfNil(turns),
	})
}

// Search handles GET /api/v1/history — keyword and date filtered
// search over the authenticated tenant's turns.
func (h *HistoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	turns, ok := h.filteredTurns(w, r)
	if !ok {
		return
	}

	limit := parseLimit(r)
	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	total := len(turns)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"total":  total,
		"offset": offset,
		"turns":  emptyIfNil(turns[offset:end]),
	})
}

// Export handles GET /api/v1/history/export — the same filtered view
// as Search, rendered as a CSV download.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	turns, ok := h.filteredTurns(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="chat_history.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write([]string{"created_at", "session_id", "sender", "sender_user_id", "intent", "text"})
	for _, t := range turns {
		cw.Write([]string{
			t.CreatedAt.UTC().Format(time.RFC3339),
			t.SessionID,
			string(t.Sender),
			t.SenderUserID,
			t.Intent,
			t.Text,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("history export write failed", zap.Error(err))
	}
}

// filteredTurns loads the tenant's turns and applies keyword and date
// filters from the query string. It writes the error response itself
// and reports success through the second return.
func (h *HistoryHandler) filteredTurns(w http.ResponseWriter, r *http.Request) ([]model.ConversationTurn, bool) {
	if h.source == nil {
		writeError(w, http.StatusServiceUnavailable, "history is not enabled")
		return nil, false
	}

	tenantID := middleware.GetTenantID(r.Context())
	if err := middleware.ValidateTenantID(tenantID); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return nil, false
	}

	var from, to time.Time
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = parseDate(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return nil, false
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = parseDate(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date")
			return nil, false
		}
		// A date-only upper bound is inclusive of that day.
		if len(v) == len("2006-01-02") {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
	}

	turns, err := h.source.TenantTurns(r.Context(), tenantID, 0)
	if err != nil {
		h.logger.Error("tenant history read failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read history")
		return nil, false
	}

	keyword := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("keyword")))
	filtered := turns[:0:0]
	for _, t := range turns {
		if keyword != "" && !strings.Contains(strings.ToLower(t.Text), keyword) {
			continue
		}
		if !from.IsZero() && t.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && t.CreatedAt.After(to) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, true
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func parseLimit(r *http.Request) int {
	limit := defaultHistoryLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxHistoryLimit {
			limit = parsed
		}
	}
	return limit
}

func emptyIfNil(turns []model.ConversationTurn) []model.ConversationTurn {
	if turns == nil {
		return []model.ConversationTurn{}
	}
	return turns
}
