package generation

import (
	"errors"
	"fmt"
)

// ErrNoContent is wrapped into a GenerationError when the provider returns an empty completion.
var ErrNoContent = errors.New("no content in response")

// GenerationError reports a failed or unusable completion: provider failure, empty
// content or content that is not JSON.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return "failed to " + e.Op
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError reports well-formed JSON that does not match the expected shape.
type ValidationError struct {
	Op      string
	Content string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("failed to %s: invalid response: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ProviderError carries the upstream HTTP status when the provider call itself failed.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider unavailable: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
