// Package reply post-processes resolved template text: placeholder
// substitution, personality styling and emoji policy.
package reply

import (
	"regexp"
	"strings"

	"github.com/botforge-ai/response-engine/internal/model"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// RenderPlaceholders substitutes {{field_name}} markers against the
// company profile. Placeholders without a value are left verbatim so a
// missing field never breaks a reply.
func RenderPlaceholders(text string, profile *model.CompanyProfile) string {
	if text == "" || !strings.Contains(text, "{{") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value := profile.Field(name); value != "" {
			return value
		}
		return match
	})
}
