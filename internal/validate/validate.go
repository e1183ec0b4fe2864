package validate

import (
	"fmt"
	"strings"
)

// Signup field length limits, shared by the JSON API and the HTML form.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func checkRequired(value, field string) string {
	if strings.TrimSpace(value) == "" {
		return field + " is required"
	}
	return ""
}

// Name returns "" when s is an acceptable signup name.
func Name(s string) string {
	if msg := checkRequired(s, "name"); msg != "" {
		return msg
	}
	return checkLen(s, MaxNameLength, "name")
}

// Email returns "" when s is present and within length. The address shape is
// checked separately by EmailShape.
func Email(s string) string {
	if msg := checkRequired(s, "email"); msg != "" {
		return msg
	}
	return checkLen(s, MaxEmailLength, "email")
}

// EmailShape reports whether s looks like an address. Only the "@" is checked.
func EmailShape(s string) bool {
	return strings.Contains(s, "@")
}
