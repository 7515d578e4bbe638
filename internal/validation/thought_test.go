package validation

import (
	"strings"
	"testing"
)

func TestValidateMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		ok      bool
	}{
		{name: "typical message", message: "hello world", ok: true},
		{name: "minimum length", message: strings.Repeat("a", 5), ok: true},
		{name: "maximum length", message: strings.Repeat("a", 140), ok: true},
		{name: "maximum length multibyte", message: strings.Repeat("ü", 140), ok: true},
		{name: "five emoji", message: strings.Repeat("\U0001F499", 5), ok: true},
		{name: "empty", message: "", ok: false},
		{name: "whitespace only", message: "     ", ok: false},
		{name: "below minimum", message: "hiya", ok: false},
		{name: "above maximum", message: strings.Repeat("a", 141), ok: false},
		{name: "above maximum multibyte", message: strings.Repeat("ü", 141), ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMessage(tc.message)
			if tc.ok && err != nil {
				t.Fatalf("expected valid message, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid message, got nil error")
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{name: "simple", username: "ada", ok: true},
		{name: "with separators", username: "ada.lovelace_1-2", ok: true},
		{name: "minimum length", username: "ab", ok: true},
		{name: "maximum length", username: strings.Repeat("a", 30), ok: true},
		{name: "too short", username: "a", ok: false},
		{name: "too long", username: strings.Repeat("a", 31), ok: false},
		{name: "space", username: "ada lovelace", ok: false},
		{name: "symbol", username: "ada!", ok: false},
		{name: "empty", username: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.username)
			if tc.ok && err != nil {
				t.Fatalf("expected valid username, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid username, got nil error")
			}
		})
	}
}
