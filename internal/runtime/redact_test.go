package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactArguments(t *testing.T) {
	args := map[string]any{
		"name":      "Alice",
		"api_token": "s3cr3t",
		"Password":  "hunter2",
		"count":     3,
	}

	redacted := redactArguments(args)
	assert.Equal(t, "Alice", redacted["name"])
	assert.Equal(t, "***", redacted["api_token"])
	assert.Equal(t, "***", redacted["Password"])
	assert.Equal(t, 3, redacted["count"])

	// Original map stays untouched.
	assert.Equal(t, "s3cr3t", args["api_token"])
}

func TestRedactArgumentsNil(t *testing.T) {
	assert.Nil(t, redactArguments(nil))
}
