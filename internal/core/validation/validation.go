// Package validation holds the pure input validators for user-supplied
// fields. Validators aggregate every violation instead of stopping at the
// first so a caller can report all problems in one response.
package validation

import (
	"html"
	"regexp"
	"strings"

	"Feedline/internal/core/apperr"
)

const minFieldLength = 5

var (
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// ValidateSignup checks the fields of a signup request.
func ValidateSignup(email, name, password string) []apperr.Violation {
	var violations []apperr.Violation
	if !emailRegex.MatchString(email) {
		violations = append(violations, apperr.Violation{Field: "email", Message: "email is invalid"})
	}
	if strings.TrimSpace(name) == "" {
		violations = append(violations, apperr.Violation{Field: "name", Message: "name must not be empty"})
	}
	violations = append(violations, validatePassword(password)...)
	return violations
}

// ValidateLogin checks the fields of a login request.
func ValidateLogin(email, password string) []apperr.Violation {
	var violations []apperr.Violation
	if !emailRegex.MatchString(email) {
		violations = append(violations, apperr.Violation{Field: "email", Message: "email is invalid"})
	}
	violations = append(violations, validatePassword(password)...)
	return violations
}

// ValidatePostFields checks the title and content of a post.
func ValidatePostFields(title, content string) []apperr.Violation {
	var violations []apperr.Violation
	if len(strings.TrimSpace(title)) < minFieldLength {
		violations = append(violations, apperr.Violation{Field: "title", Message: "title must be at least 5 characters"})
	}
	if len(strings.TrimSpace(content)) < minFieldLength {
		violations = append(violations, apperr.Violation{Field: "content", Message: "content must be at least 5 characters"})
	}
	return violations
}

func validatePassword(password string) []apperr.Violation {
	if len(password) < minFieldLength || !alphanumericRegex.MatchString(password) {
		return []apperr.Violation{{
			Field:   "password",
			Message: "password must be at least 5 alphanumeric characters",
		}}
	}
	return nil
}

// SanitizeName trims and HTML-escapes a display name before storage.
func SanitizeName(name string) string {
	return html.EscapeString(strings.TrimSpace(name))
}
