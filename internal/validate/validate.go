// Package validate implements signup input validation. All checks run
// before any store mutation, so a rejected signup never touches the
// database.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/chatmate/internal/common"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email checks the address format. It returns an error wrapping
// common.ErrValidation on failure.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: please enter a valid email address", common.ErrValidation)
	}
	return nil
}

// Password enforces the password policy: at least 8 characters with at
// least one uppercase letter, one lowercase letter, and one digit. The
// first failing rule is reported.
func Password(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", common.ErrValidation)
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return fmt.Errorf("%w: password must contain at least one uppercase letter", common.ErrValidation)
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		return fmt.Errorf("%w: password must contain at least one lowercase letter", common.ErrValidation)
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		return fmt.Errorf("%w: password must contain at least one number", common.ErrValidation)
	}
	return nil
}

// Required checks that a field is non-empty after trimming.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	return nil
}
