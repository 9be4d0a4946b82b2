package template

import (
	"context"

	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/pkg/metrics"
)

// fallbackIntent is the intent key consulted when the exact intent has
// no row at a tier.
const fallbackIntent = "fallback"

// anyIntent is the quick-reply analogue of fallbackIntent.
const anyIntent = "any"

// globalIndustry keys the global-default scope.
const globalIndustry = "default"

// Resolver resolves (tenant, industry, intent, language) to response
// text through a fixed cascade. Resolution is read-only and
// deterministic: the same inputs against unchanged stores always yield
// the same text.
type Resolver struct {
	store        Store
	quickReplies QuickReplyStore
}

// NewResolver creates a resolver over the given stores.
func NewResolver(store Store, quickReplies QuickReplyStore) *Resolver {
	return &Resolver{store: store, quickReplies: quickReplies}
}

// Resolve returns the most tenant-specific non-empty template for the
// key. The cascade prefers an exact-intent match at any scope over a
// remembered fallback-intent match from a more specific scope. When a
// non-English language has no configured rows, the configured tiers
// are re-walked in English before the built-in table: tenant
// customization still wins for gated fr/zh turns. The result is never
// empty.
func (r *Resolver) Resolve(ctx context.Context, tenantID, industry, intent, language string) string {
	if intent == "" {
		intent = fallbackIntent
	}
	industry = model.NormalizeIndustry(industry)
	language = model.NormalizeLanguage(language)

	text, candidates, ok := r.configuredTemplate(ctx, tenantID, industry, language, intent)
	if ok {
		return text
	}
	if language != "en" {
		enText, enCandidates, enOK := r.configuredTemplate(ctx, tenantID, industry, "en", intent)
		if enOK {
			return enText
		}
		candidates = append(candidates, enCandidates...)
	}

	industryTable, found := builtinTemplates[industry]
	if !found {
		industryTable = builtinTemplates[globalIndustry]
	}
	if text, ok := industryTable[intent]; ok {
		metrics.TemplateTierHits.WithLabelValues("builtin").Inc()
		return text
	}

	if len(candidates) > 0 {
		metrics.TemplateTierHits.WithLabelValues("configured_fallback").Inc()
		return candidates[0]
	}

	metrics.TemplateTierHits.WithLabelValues("builtin_fallback").Inc()
	if text, ok := industryTable[fallbackIntent]; ok && text != "" {
		return text
	}
	return globalFallback
}

// configuredTemplate walks the tenant -> industry -> global configured
// tiers for one language. Fallback-intent rows are remembered, not
// returned immediately: an exact match at a broader scope still wins
// over them. The candidates come back to the caller so a later walk
// can still consult them.
func (r *Resolver) configuredTemplate(ctx context.Context, tenantID, industry, language, intent string) (string, []string, bool) {
	var candidates []string
	remember := func(text string, ok bool) {
		if ok && text != "" {
			candidates = append(candidates, text)
		}
	}

	if tenantID != "" {
		if text, ok := r.store.GetTemplate(ctx, tenantID, industry, language, intent); ok && text != "" {
			metrics.TemplateTierHits.WithLabelValues("tenant").Inc()
			return text, nil, true
		}
		remember(r.store.GetTemplate(ctx, tenantID, industry, language, fallbackIntent))
	}

	if text, ok := r.store.GetTemplate(ctx, "", industry, language, intent); ok && text != "" {
		metrics.TemplateTierHits.WithLabelValues("industry").Inc()
		return text, nil, true
	}
	remember(r.store.GetTemplate(ctx, "", industry, language, fallbackIntent))

	if text, ok := r.store.GetTemplate(ctx, "", globalIndustry, language, intent); ok && text != "" {
		metrics.TemplateTierHits.WithLabelValues("global").Inc()
		return text, nil, true
	}
	remember(r.store.GetTemplate(ctx, "", globalIndustry, language, fallbackIntent))

	return "", candidates, false
}

// ResolveQuickReplies returns the suggested follow-ups for the key.
// Same cascade shape as Resolve, keyed by "any" instead of the
// fallback intent, with the same English re-walk of configured tiers,
// ending in a built-in per-language list.
func (r *Resolver) ResolveQuickReplies(ctx context.Context, tenantID, industry, intent, language string) []string {
	if intent == "" {
		intent = anyIntent
	}
	industry = model.NormalizeIndustry(industry)
	language = model.NormalizeLanguage(language)

	if replies, ok := r.configuredQuickReplies(ctx, tenantID, industry, language, intent); ok {
		return replies
	}
	if language != "en" {
		if replies, ok := r.configuredQuickReplies(ctx, tenantID, industry, "en", intent); ok {
			return replies
		}
	}

	if replies, ok := builtinQuickReplies[language]; ok {
		return replies
	}
	return builtinQuickReplies["en"]
}

// configuredQuickReplies walks the configured tiers for one language.
func (r *Resolver) configuredQuickReplies(ctx context.Context, tenantID, industry, language, intent string) ([]string, bool) {
	if tenantID != "" {
		if replies, ok := r.quickReplies.GetQuickReplies(ctx, tenantID, industry, language, intent); ok {
			return replies, true
		}
		if replies, ok := r.quickReplies.GetQuickReplies(ctx, tenantID, industry, language, anyIntent); ok {
			return replies, true
		}
	}

	if replies, ok := r.quickReplies.GetQuickReplies(ctx, "", industry, language, intent); ok {
		return replies, true
	}
	if replies, ok := r.quickReplies.GetQuickReplies(ctx, "", industry, language, anyIntent); ok {
		return replies, true
	}

	if replies, ok := r.quickReplies.GetQuickReplies(ctx, "", globalIndustry, language, intent); ok {
		return replies, true
	}
	if replies, ok := r.quickReplies.GetQuickReplies(ctx, "", globalIndustry, language, anyIntent); ok {
		return replies, true
	}

	return nil, false
}
