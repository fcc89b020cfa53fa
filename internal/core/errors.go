package core

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any outbound I/O when the OpenRouter
// credential is absent. Its text is the caller-visible error message.
var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY is not configured.")

// ProviderError is a non-success response from the completion provider. The
// status and body are for server logs only; callers get a generic failure.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("openrouter returned status %d: %s", e.StatusCode, e.Body)
}
