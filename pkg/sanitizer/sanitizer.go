package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// TrimSpaces collapses runs of whitespace and trims the ends.
func TrimSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeMobile parses a phone number and returns it in E.164 form.
// The raw input is returned unchanged when it cannot be parsed; the
// validator reports the failure with a proper message.
func NormalizeMobile(raw, region string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	num, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return trimmed
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}

// IsValidMobile reports whether the number parses and is valid for the
// given default region.
func IsValidMobile(raw, region string) bool {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
