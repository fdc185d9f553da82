package runtime

import "strings"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"secret",
	"authorization",
	"api_key",
	"apikey",
	"credential",
	"cookie",
	"session",
	"bearer",
}

// redactArguments returns a copy of arguments with sensitive values replaced.
func redactArguments(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	redacted := make(map[string]any, len(values))
	for key, value := range values {
		if isSensitiveKey(key) {
			redacted[key] = "***"
			continue
		}
		redacted[key] = value
	}
	return redacted
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
