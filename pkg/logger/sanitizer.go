package logger

import (
	"regexp"
)

// Sensitive field patterns to filter from logs
var (
	passwordPattern = regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*[^\s]+`)
	bearerPattern   = regexp.MustCompile(`(?i)(bearer)\s+[^\s]+`)
	tokenPattern    = regexp.MustCompile(`(?i)(token|jwt)\s*[:=]\s*[^\s]+`)
	secretPattern   = regexp.MustCompile(`(?i)(secret|private[_-]?key)\s*[:=]\s*[^\s]+`)
	// Compact JWS: a base64url JSON header followed by two more segments.
	jwsPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
)

const redactedPlaceholder = "[REDACTED]"

// SanitizeLogMessage removes credentials and tokens from log messages
func SanitizeLogMessage(message string) string {
	message = jwsPattern.ReplaceAllString(message, redactedPlaceholder)
	message = passwordPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = bearerPattern.ReplaceAllString(message, "${1} "+redactedPlaceholder)
	message = tokenPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = secretPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)

	return message
}
