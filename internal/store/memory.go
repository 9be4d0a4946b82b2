// Package store provides in-memory repositories for tenant
// configuration: company profiles, chatbots and personalities. They
// would be replaced with database-backed repositories in production.
package store

import (
	"context"
	"sync"

	"github.com/botforge-ai/response-engine/internal/model"
)

// Memory holds all tenant configuration behind one lock.
type Memory struct {
	mu            sync.RWMutex
	profiles      map[string]*model.CompanyProfile
	chatbots      map[string]*model.ChatbotConfig
	personalities map[string]*model.Personality
}

// NewMemory creates an empty store pre-seeded with the stock
// personalities.
func NewMemory() *Memory {
	m := &Memory{
		profiles:      make(map[string]*model.CompanyProfile),
		chatbots:      make(map[string]*model.ChatbotConfig),
		personalities: make(map[string]*model.Personality),
	}
	for _, p := range stockPersonalities {
		m.personalities[p.ID] = p
	}
	return m
}

// stockPersonalities are available to every tenant out of the box.
var stockPersonalities = []*model.Personality{
	{ID: "friendly", Name: "Friendly Bot", Description: "Warm, casual tone with upbeat closings.", Type: "system"},
	{ID: "professional", Name: "Professional Assistant", Description: "Formal tone suited to corporate accounts.", Type: "system"},
	{ID: "neutral", Name: "Neutral", Description: "No added styling.", Type: "system"},
}

// GetProfile returns the tenant's company profile, or nil when unknown.
func (m *Memory) GetProfile(_ context.Context, tenantID string) (*model.CompanyProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[tenantID], nil
}

// UpsertProfile stores or replaces a company profile.
func (m *Memory) UpsertProfile(profile *model.CompanyProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.TenantID] = profile
}

// GetChatbot returns the tenant's chatbot, or nil when unknown.
func (m *Memory) GetChatbot(_ context.Context, tenantID string) (*model.ChatbotConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chatbots[tenantID], nil
}

// UpsertChatbot stores or replaces a chatbot configuration.
func (m *Memory) UpsertChatbot(chatbot *model.ChatbotConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatbots[chatbot.TenantID] = chatbot
}

// GetPersonality returns a personality by id, or nil when unknown.
func (m *Memory) GetPersonality(_ context.Context, personalityID string) (*model.Personality, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.personalities[personalityID], nil
}

// UpsertPersonality stores or replaces a personality.
func (m *Memory) UpsertPersonality(p *model.Personality) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.personalities[p.ID] = p
}

// ListPersonalities returns every personality, stock ones included.
func (m *Memory) ListPersonalities() []*model.Personality {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Personality, 0, len(m.personalities))
	for _, p := range m.personalities {
		out = append(out, p)
	}
	return out
}
