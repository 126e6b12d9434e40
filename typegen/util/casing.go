package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts snake_case, kebab-case or SCREAMING_SNAKE_CASE to
// PascalCase. Each word is capitalized and the rest of it lowercased, so
// "ip_address" -> "IpAddress" and "HAS_PORT" -> "HasPort".
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, isSeparator)

	// Caser is stateful; one per call
	title := cases.Title(language.Und)
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(title.String(part))
	}
	return result.String()
}

// ToKebabCase converts snake_case to lower kebab-case for package names.
func ToKebabCase(s string) string {
	parts := strings.FieldsFunc(s, isSeparator)
	return strings.ToLower(strings.Join(parts, "-"))
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-'
}
