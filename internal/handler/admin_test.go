package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botforge-ai/response-engine/internal/middleware"
	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/internal/store"
	"github.com/botforge-ai/response-engine/internal/template"
	"github.com/botforge-ai/response-engine/pkg/logger"
)

func newAdminFixture() (*AdminHandler, *template.MemoryStore, *store.Memory) {
	templates := template.NewMemoryStore()
	tenants := store.NewMemory()
	return NewAdminHandler(templates, tenants, logger.NewNop()), templates, tenants
}

func adminRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.TenantIDKey, "acme")
	return req.WithContext(ctx)
}

func TestUpsertTemplateScopedToTenant(t *testing.T) {
	h, templates, _ := newAdminFixture()

	// The body claims another tenant; the JWT tenant wins.
	body := `{"tenant_id":"intruder","industry":"F&B","language":"french","intent":"menu","text":"Voici notre carte."}`
	rec := httptest.NewRecorder()
	h.UpsertTemplate(rec, adminRequest(http.MethodPut, "/api/v1/admin/templates", body))
	require.Equal(t, http.StatusOK, rec.Code)

	// Keys are normalized on write so resolution finds them.
	text, ok := templates.GetTemplate(context.Background(), "acme", "restaurant", "fr", "menu")
	require.True(t, ok)
	assert.Equal(t, "Voici notre carte.", text)

	listed := templates.ListTemplates("acme")
	require.Len(t, listed, 1)
	assert.Equal(t, "acme", listed[0].TenantID)
}

func TestUpsertTemplateRequiresIntent(t *testing.T) {
	h, _, _ := newAdminFixture()

	rec := httptest.NewRecorder()
	h.UpsertTemplate(rec, adminRequest(http.MethodPut, "/api/v1/admin/templates", `{"text":"hello"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTemplates(t *testing.T) {
	h, templates, _ := newAdminFixture()
	templates.UpsertTemplate(template.Template{TenantID: "acme", Industry: "restaurant", Language: "en", Intent: "menu", Text: "Our menu."})
	templates.UpsertTemplate(template.Template{TenantID: "other", Industry: "retail", Language: "en", Intent: "returns", Text: "Returns."})

	rec := httptest.NewRecorder()
	h.ListTemplates(rec, adminRequest(http.MethodGet, "/api/v1/admin/templates", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Templates []template.Template `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 1)
	assert.Equal(t, "menu", resp.Templates[0].Intent)
}

func TestUpsertQuickReplies(t *testing.T) {
	h, templates, _ := newAdminFixture()

	body := `{"industry":"restaurant","language":"en","intent":"any","replies":["Menu","Book a table"]}`
	rec := httptest.NewRecorder()
	h.UpsertQuickReplies(rec, adminRequest(http.MethodPut, "/api/v1/admin/quick-replies", body))
	require.Equal(t, http.StatusOK, rec.Code)

	replies, ok := templates.GetQuickReplies(context.Background(), "acme", "restaurant", "en", "any")
	require.True(t, ok)
	assert.Equal(t, []string{"Menu", "Book a table"}, replies)
}

func TestUpsertProfileAndChatbot(t *testing.T) {
	h, _, tenants := newAdminFixture()

	rec := httptest.NewRecorder()
	h.UpsertProfile(rec, adminRequest(http.MethodPut, "/api/v1/admin/profile",
		`{"name":"Acme Diner","industry":"restaurant","fields":{"contact_email":"hello@acme.example"}}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.UpsertChatbot(rec, adminRequest(http.MethodPut, "/api/v1/admin/chatbot",
		`{"bot_id":"bot-1","name":"Acme Assistant","personality_id":"friendly"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	profile, err := tenants.GetProfile(context.Background(), "acme")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Acme Diner", profile.Name)
	assert.Equal(t, "acme", profile.TenantID)

	chatbot, err := tenants.GetChatbot(context.Background(), "acme")
	require.NoError(t, err)
	require.NotNil(t, chatbot)
	assert.Equal(t, "friendly", chatbot.PersonalityID)
}

func TestListPersonalitiesIncludesStock(t *testing.T) {
	h, _, _ := newAdminFixture()

	rec := httptest.NewRecorder()
	h.ListPersonalities(rec, adminRequest(http.MethodGet, "/api/v1/admin/personalities", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Personalities []model.Personality `json:"personalities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Personalities, 3)
	assert.Equal(t, "friendly", resp.Personalities[0].ID)
}
