package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// ValidateEmail validates email format and length using the stdlib
// RFC 5322 parser.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321 caps a deliverable address at 254 characters
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email address format")
	}

	return nil
}
