// Package validation contains input validation rules shared by services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"murmur/internal/models"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{2,30}$`)

// ValidateMessage checks the thought message length bounds.
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	n := utf8.RuneCountInString(message)
	if n < models.MinMessageLen || n > models.MaxMessageLen {
		return fmt.Errorf("message must be between %d and %d characters", models.MinMessageLen, models.MaxMessageLen)
	}
	return nil
}

// ValidateUsername checks username format for registration.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 2-30 characters and contain only letters, numbers, dots, dashes, and underscores")
	}
	return nil
}
