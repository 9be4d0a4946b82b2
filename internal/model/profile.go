// Package model defines data structures for the response engine.
package model

import "strings"

// CompanyProfile holds the tenant attributes used for placeholder
// substitution and industry-aware intent refinement. It is read-only
// to the engine; the owning repository supplies it whole.
type CompanyProfile struct {
	TenantID string            `json:"tenant_id"`
	Name     string            `json:"name"`
	Industry string            `json:"industry"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// Field returns a named profile attribute, or "" when absent.
func (p *CompanyProfile) Field(name string) string {
	if p == nil {
		return ""
	}
	switch name {
	case "company_name":
		return p.Name
	case "industry":
		return p.Industry
	}
	return p.Fields[name]
}

// industryAliases maps raw industry labels, as entered by organisation
// admins, onto the canonical lookup keys.
var industryAliases = map[string]string{
	"f&b":        "restaurant",
	"restaurant": "restaurant",
	"education":  "education",
	"retail":     "retail",
}

// NormalizeIndustry maps a raw industry string to its canonical form.
// Unknown or empty values become "default".
func NormalizeIndustry(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "default"
	}
	if canonical, ok := industryAliases[key]; ok {
		return canonical
	}
	return key
}

// languageAliases maps human-readable language names onto ISO codes.
var languageAliases = map[string]string{
	"english": "en",
	"en":      "en",
	"french":  "fr",
	"fr":      "fr",
	"chinese": "zh",
	"zh":      "zh",
}

// NormalizeLanguage maps a language label to its ISO code, defaulting
// to English for unknown or empty values.
func NormalizeLanguage(raw string) string {
	if code, ok := languageAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return code
	}
	return "en"
}
