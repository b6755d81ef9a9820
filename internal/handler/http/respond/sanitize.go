package respond

import (
	"regexp"
)

var (
	// user:password@ inside a DSN.
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	// password=... in key/value DSNs.
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)(\S+)`)
	// Compact JWS tokens.
	jwtPattern = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]*`)
)

// SanitizeError returns err's message with credentials and tokens masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	return msg
}
