package engine

import "github.com/botforge-ai/response-engine/internal/model"

// Intent refinement specializes or generalizes an intent based on the
// tenant's profile, so a template with a populated structured field is
// preferred and a template with a missing placeholder is never
// rendered.

// promotions map a generic intent to its specialized form, taken when
// the named profile field is populated.
var promotions = []struct {
	generic     string
	specialized string
	field       string
}{
	{"pricing", "price_range", "price_range"},
}

// demotions map a specialized intent back to its generic form, taken
// when the named profile field is empty.
var demotions = []struct {
	specialized string
	generic     string
	field       string
}{
	{"price_range", "pricing", "price_range"},
	{"seating_capacity", "contact_support", "seating_capacity"},
}

// refineIntent returns the intent to use for template resolution.
func refineIntent(intent string, profile *model.CompanyProfile) string {
	for _, p := range promotions {
		if intent == p.generic && profile.Field(p.field) != "" {
			return p.specialized
		}
	}
	for _, d := range demotions {
		if intent == d.specialized && profile.Field(d.field) == "" {
			return d.generic
		}
	}
	return intent
}
