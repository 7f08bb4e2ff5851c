package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex      = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	postalCodeRegex = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeString escapes HTML special characters and strips any remaining
// tags from user-supplied text.
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone checks phone number format (E.164-ish)
func ValidatePhone(phone string) bool {
	return phone == "" || phoneRegex.MatchString(phone)
}

// ValidatePostalCode checks postal code format
func ValidatePostalCode(code string) bool {
	return postalCodeRegex.MatchString(code)
}

// ValidatePassword enforces the minimum password policy: at least 8
// characters with upper, lower and numeric characters.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasNumber bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasNumber = true
		}
	}
	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("password must contain uppercase, lowercase and numeric characters")
	}
	return nil
}

// ValidatePromoValue enforces the percentage cap at creation time. The
// storage layer does not enforce it, so creation is the only gate.
func ValidatePromoValue(promoType string, value float64) error {
	if value < 0 {
		return fmt.Errorf("promo value cannot be negative")
	}
	if promoType == "percentage" && value > 100 {
		return fmt.Errorf("percentage promo value cannot exceed 100")
	}
	return nil
}
