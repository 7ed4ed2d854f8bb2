package models

import (
	"regexp"
	"strings"
)

// phonePattern is the canonical persisted form: one leading plus followed by
// 7-15 digits and nothing else.
var phonePattern = regexp.MustCompile(`^\+\d{7,15}$`)

// phoneFormatMessage names the required shape for clients.
const phoneFormatMessage = "must be in international format: +<countrycode><number>, e.g. +491234567890"

// NormalizePhone strips every character except digits and '+' from raw and
// validates the result against the canonical international form. The same
// rule applies on create and on partial update.
func NormalizePhone(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if !phonePattern.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}
