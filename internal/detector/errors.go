package detector

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration means the model provider API key is missing.
	ErrConfiguration = errors.New("OpenAI API key is not configured")
	// ErrEmptyResponse means the provider succeeded but returned no text.
	ErrEmptyResponse = errors.New("empty response from model provider")
	// ErrMalformedResponse means the reply held no parseable promises object.
	ErrMalformedResponse = errors.New("failed to parse JSON response from model provider")
)

// ValidationError reports caller input that must be corrected and resent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderError wraps a failed call to the model provider. StatusCode is 0
// when no HTTP response was received.
type ProviderError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("model provider call failed: %v", e.Err)
	}
	return fmt.Sprintf("model provider returned %d: %s", e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
