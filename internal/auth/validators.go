package auth

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/i18n"
)

const (
	MinPasswordLength = 8
	specialChars      = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks the basic shape of an address. The hosted auth
// backend does the authoritative check; this catches typos early.
func ValidateEmail(email string, tr *i18n.Translator) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return errors.New(tr.T("auth.email_invalid"))
	}
	return nil
}

// ValidatePassword enforces the registration password policy: minimum
// length plus upper case, lower case, digit and special character.
func ValidatePassword(password string, tr *i18n.Translator) error {
	if len(password) < MinPasswordLength {
		return errors.New(tr.T("auth.password_too_short", MinPasswordLength))
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return errors.New(tr.T("auth.password_complexity"))
	}
	return nil
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
