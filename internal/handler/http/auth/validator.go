package auth

import (
	"errors"
	"fmt"
	"strings"
)

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

// weakSecrets are placeholder values that show up in copied .env files.
var weakSecrets = []string{
	"secret",
	"changeme",
	"change-me",
	"password",
	"jwt-secret",
	"your-secret",
	"development",
	"test",
}

// ValidateSecret rejects missing, short or placeholder signing secrets. It
// runs at startup so a misconfigured deployment fails fast.
func ValidateSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if len(secret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (current length: %d)", MinSecretLength, len(secret))
	}
	if isRepeatedChar(secret) {
		return errors.New("JWT_SECRET must not be a single repeated character")
	}

	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.HasPrefix(lower, weak) && isRepeatedSuffix(lower[len(weak):]) {
			return errors.New("JWT_SECRET must not be based on a placeholder value")
		}
	}
	return nil
}

// isRepeatedChar checks if s consists of a single repeated character.
func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// isRepeatedSuffix catches padding such as "secret111111..." or "changeme!!!!".
func isRepeatedSuffix(s string) bool {
	return s == "" || isRepeatedChar(s)
}
