package ident

import (
	"strings"
	"unicode"
)

// customPrefix marks client-side identifiers for user-authored templates. The
// template service itself only knows the bare id.
const customPrefix = "custom-"

// NormalizeTemplateID maps the caller-supplied template identifier to the
// canonical cache/service key: whitespace trimmed and the custom- prefix
// stripped, so "custom-X" and "X" resolve to the same entry.
func NormalizeTemplateID(id string) string {
	id = strings.TrimSpace(id)
	return strings.TrimPrefix(id, customPrefix)
}

// Title turns a kebab-case identifier into a display label, e.g.
// "quarterly-revenue" becomes "Quarterly Revenue".
func Title(s string) string {
	var result strings.Builder
	capitalize := true

	for _, r := range s {
		switch {
		case r == '-' || r == '_':
			result.WriteRune(' ')
			capitalize = true
		case capitalize:
			result.WriteRune(unicode.ToUpper(r))
			capitalize = false
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
