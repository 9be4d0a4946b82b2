// Package template resolves response templates and quick replies
// through a tenant -> industry -> global cascade with built-in
// last-resort defaults.
package template

import (
	"context"
	"sort"
	"sync"
)

// Template is one configured response template row. An empty TenantID
// marks an industry- or global-scope default.
type Template struct {
	TenantID string `json:"tenant_id,omitempty"`
	Industry string `json:"industry"`
	Language string `json:"language"`
	Intent   string `json:"intent"`
	Text     string `json:"text"`
}

// QuickReplySet is an ordered list of suggested follow-up phrases for
// one (tenant, industry, language, intent) key.
type QuickReplySet struct {
	TenantID string   `json:"tenant_id,omitempty"`
	Industry string   `json:"industry"`
	Language string   `json:"language"`
	Intent   string   `json:"intent"`
	Replies  []string `json:"replies"`
}

// Store is the keyed lookup backing the template cascade.
type Store interface {
	GetTemplate(ctx context.Context, tenantID, industry, language, intent string) (string, bool)
}

// QuickReplyStore is the keyed lookup backing the quick-reply cascade.
type QuickReplyStore interface {
	GetQuickReplies(ctx context.Context, tenantID, industry, language, intent string) ([]string, bool)
}

type key struct {
	tenantID string
	industry string
	language string
	intent   string
}

// MemoryStore is an in-memory template and quick-reply store. It would
// be replaced with a database-backed store in production.
type MemoryStore struct {
	mu           sync.RWMutex
	templates    map[key]string
	quickReplies map[key][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates:    make(map[key]string),
		quickReplies: make(map[key][]string),
	}
}

// GetTemplate returns the template text for an exact key.
func (s *MemoryStore) GetTemplate(_ context.Context, tenantID, industry, language, intent string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.templates[key{tenantID, industry, language, intent}]
	return text, ok
}

// UpsertTemplate stores or replaces a template row. An empty text
// deletes the row so it cannot shadow lower cascade tiers.
func (s *MemoryStore) UpsertTemplate(t Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{t.TenantID, t.Industry, t.Language, t.Intent}
	if t.Text == "" {
		delete(s.templates, k)
		return
	}
	s.templates[k] = t.Text
}

// ListTemplates returns all templates for a tenant, ordered by
// (industry, language, intent) for stable output.
func (s *MemoryStore) ListTemplates(tenantID string) []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Template
	for k, text := range s.templates {
		if k.tenantID == tenantID {
			out = append(out, Template{
				TenantID: k.tenantID,
				Industry: k.industry,
				Language: k.language,
				Intent:   k.intent,
				Text:     text,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Industry != out[j].Industry {
			return out[i].Industry < out[j].Industry
		}
		if out[i].Language != out[j].Language {
			return out[i].Language < out[j].Language
		}
		return out[i].Intent < out[j].Intent
	})
	return out
}

// GetQuickReplies returns the quick replies for an exact key.
func (s *MemoryStore) GetQuickReplies(_ context.Context, tenantID, industry, language, intent string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	replies, ok := s.quickReplies[key{tenantID, industry, language, intent}]
	if !ok || len(replies) == 0 {
		return nil, false
	}
	out := make([]string, len(replies))
	copy(out, replies)
	return out, true
}

// UpsertQuickReplies stores or replaces a quick-reply set. An empty
// list deletes the row.
func (s *MemoryStore) UpsertQuickReplies(q QuickReplySet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{q.TenantID, q.Industry, q.Language, q.Intent}
	if len(q.Replies) == 0 {
		delete(s.quickReplies, k)
		return
	}
	replies := make([]string, len(q.Replies))
	copy(replies, q.Replies)
	s.quickReplies[k] = replies
}
