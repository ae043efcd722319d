package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

const maxDisplayNameLen = 64

// SanitizeDisplayName strips markup and control bytes from a participant's
// display name before it is embedded in board payloads.
func SanitizeDisplayName(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.ReplaceAll(input, "\n", " ")

	if len(input) > maxDisplayNameLen {
		input = input[:maxDisplayNameLen]
	}
	if input == "" {
		input = "unknown"
	}
	return input
}
