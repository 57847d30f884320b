package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/comment-pr/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrNotAbsoluteURL is returned by ParseAbsoluteURL for relative or malformed input
var ErrNotAbsoluteURL = errors.New("not an absolute URL")

// ParseString passes the raw value through unchanged
func ParseString(raw string) (any, error) {
	return raw, nil
}

// ParseAbsoluteURL converts the raw value into an absolute *url.URL
func ParseAbsoluteURL(raw string) (any, error) {
	u, ok := models.ParseAbsoluteURL(raw)
	if !ok {
		return nil, ErrNotAbsoluteURL
	}
	return u, nil
}

// IsValidEmail checks for a basic local@domain.tld shape
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// InvalidEmailMessage formats the error for a malformed email value
func InvalidEmailMessage(email string) string {
	return fmt.Sprintf("'%s' is not a valid email address", email)
}

// EmailRule checks the named field when the form supplied a value for it
func EmailRule(field string) Rule {
	return func(values Values) []string {
		if values.State(field) != StatePresent {
			return nil
		}
		email := values.String(field)
		if IsValidEmail(email) {
			return nil
		}
		return []string{InvalidEmailMessage(email)}
	}
}
