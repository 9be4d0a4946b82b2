// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/botforge-ai/response-engine/internal/engine"
	"github.com/botforge-ai/response-engine/internal/middleware"
	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/pkg/logger"
)

// Responder resolves conversation turns. Implemented by engine.Engine.
type Responder interface {
	Chat(ctx context.Context, tenantID, message, sessionID, userID string) (*model.ChatResult, error)
	Welcome(ctx context.Context, tenantID, sessionID string) (*model.ChatResult, error)
}

// ChatHandler handles the public widget endpoints.
type ChatHandler struct {
	responder Responder
	logger    *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(responder Responder, log *logger.Logger) *ChatHandler {
	return &ChatHandler{responder: responder, logger: log}
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	TenantID  string `json:"tenant_id"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateTenantID(req.TenantID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateMessage(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSessionID(req.SessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.responder.Chat(r.Context(), req.TenantID, req.Message, req.SessionID, req.UserID)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Welcome handles GET /chat/welcome
func (h *ChatHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	sessionID := r.URL.Query().Get("session_id")

	if err := middleware.ValidateTenantID(tenantID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.responder.Welcome(r.Context(), tenantID, sessionID)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ChatHandler) writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrMissingTenant), errors.Is(err, engine.ErrMissingMessage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrTenantNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("chat turn failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to resolve response")
	}
}
