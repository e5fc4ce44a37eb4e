package shared

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

// ValidateRequired checks that a trimmed string is non-empty and within max runes.
func ValidateRequired(field, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return Validation("%s cannot be empty", field)
	}
	return ValidateMaxLength(field, value, max)
}

// ValidateMaxLength checks an optional string length.
func ValidateMaxLength(field, value string, max int) error {
	if len([]rune(value)) > max {
		return Validation("%s cannot exceed %d characters", field, max)
	}
	return nil
}

// ValidateEmail checks an optional email address. Empty is allowed.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > 100 {
		return Validation("email cannot exceed 100 characters")
	}
	if !emailPattern.MatchString(email) {
		return Validation("invalid email format")
	}
	return nil
}

// ValidatePhone checks an optional phone number. Empty is allowed.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) > 20 {
		return Validation("phone cannot exceed 20 characters")
	}
	if !phonePattern.MatchString(phone) {
		return Validation("invalid phone number format")
	}
	return nil
}
