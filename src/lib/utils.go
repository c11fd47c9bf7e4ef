package lib

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
)

// MessageResponse returns a map with a message key for API responses.
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}

// NormalizeEmail lower-cases and trims an email address. Emails are
// normalized on every write and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidPassword checks the account-creation strength rule: at least 8
// characters, one digit and one special character.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	return digit && special
}
