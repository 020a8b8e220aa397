package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the model answers with no usable text.
var ErrEmptyResponse = errors.New("empty response from model")

// UpstreamError reports that the text-generation endpoint produced no usable text,
// whether because it was unreachable, rejected the call, timed out, or returned
// an empty candidate list.
type UpstreamError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream error: %s after %d attempt(s): %v", e.Message, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
