// Package normalize holds the single casing policy applied to submitted
// form data before validation and storage.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
	spaces       = regexp.MustCompile(`\s+`)
)

// Name title-cases each word: "jUAN dela  cruz" -> "Juan Dela Cruz".
func Name(s string) string {
	s = spaces.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.Und).String(s)
}

func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone keeps digits only.
func Phone(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// Text trims surrounding whitespace and leaves casing alone.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// ValidEmail is a shape check only: local@domain with a dot in the domain.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Optional maps "" to nil so empty inputs are stored as NULL.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
