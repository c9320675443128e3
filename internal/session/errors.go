package session

import "errors"

var (
	// ErrEmptyMessage rejects empty or whitespace-only user input.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrReplyPending rejects a submission while an assistant reply for the
	// same topic is still outstanding.
	ErrReplyPending = errors.New("a reply for this topic is still pending")
)
