package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel trims and NFC-normalizes a display name, so "Müll" typed
// with a combining diaeresis compares equal to the precomposed form.
func NormalizeLabel(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
