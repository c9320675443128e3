package llm

import "errors"

var (
	// ErrUnavailable indicates the completion service is unreachable.
	ErrUnavailable = errors.New("completion service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("completion request timed out")

	// ErrMalformedResponse indicates the service replied with a payload the
	// client could not interpret.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrGenerationFailed is the generic failure surfaced to callers when
	// the service responded but generation did not succeed.
	ErrGenerationFailed = errors.New("failed to get response from AI model")
)
