package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/botforge-ai/response-engine/internal/middleware"
	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/internal/store"
	"github.com/botforge-ai/response-engine/internal/template"
	"github.com/botforge-ai/response-engine/pkg/logger"
)

// AdminHandler handles tenant configuration endpoints. Every write is
// scoped to the authenticated tenant; the tenant id in a request body
// is ignored.
type AdminHandler struct {
	templates *template.MemoryStore
	tenants   *store.Memory
	logger    *logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(templates *template.MemoryStore, tenants *store.Memory, log *logger.Logger) *AdminHandler {
	return &AdminHandler{templates: templates, tenants: tenants, logger: log}
}

// ListTemplates handles GET /api/v1/admin/templates
func (h *AdminHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"templates": h.templates.ListTemplates(tenantID),
	})
}

// UpsertTemplate handles PUT /api/v1/admin/templates. An empty text
// deletes the row.
func (h *AdminHandler) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var req template.Template
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Intent == "" {
		writeError(w, http.StatusBadRequest, "intent cannot be empty")
		return
	}

	req.TenantID = middleware.GetTenantID(r.Context())
	req.Industry = model.NormalizeIndustry(req.Industry)
	req.Language = model.NormalizeLanguage(req.Language)
	h.templates.UpsertTemplate(req)

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// UpsertQuickReplies handles PUT /api/v1/admin/quick-replies. An empty
// list deletes the row.
func (h *AdminHandler) UpsertQuickReplies(w http.ResponseWriter, r *http.Request) {
	var req template.QuickReplySet
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Intent == "" {
		writeError(w, http.StatusBadRequest, "intent cannot be empty")
		return
	}

	req.TenantID = middleware.GetTenantID(r.Context())
	req.Industry = model.NormalizeIndustry(req.Industry)
	req.Language = model.NormalizeLanguage(req.Language)
	h.templates.UpsertQuickReplies(req)

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// UpsertProfile handles PUT /api/v1/admin/profile
func (h *AdminHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req model.CompanyProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	req.TenantID = middleware.GetTenantID(r.Context())
	h.tenants.UpsertProfile(&req)

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// UpsertChatbot handles PUT /api/v1/admin/chatbot
func (h *AdminHandler) UpsertChatbot(w http.ResponseWriter, r *http.Request) {
	var req model.ChatbotConfig
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.TenantID = middleware.GetTenantID(r.Context())
	h.tenants.UpsertChatbot(&req)

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// ListPersonalities handles GET /api/v1/admin/personalities
func (h *AdminHandler) ListPersonalities(w http.ResponseWriter, r *http.Request) {
	personalities := h.tenants.ListPersonalities()
	sort.Slice(personalities, func(i, j int) bool {
		return personalities[i].ID < personalities[j].ID
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":            true,
		"personalities": personalities,
	})
}
