package services

import (
	"errors"
	"fmt"
)

// ErrAINotConfigured is returned before any outbound call when no API key is set.
var ErrAINotConfigured = errors.New("AI service is not configured")

// UpstreamError wraps a failed generation call. Call names which one failed.
type UpstreamError struct {
	Call string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Call, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
