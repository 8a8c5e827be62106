package core

import "errors"

var (
	// ErrReplyNotFound means no destination could be extracted from an
	// operator reply. The reply is dropped, never retried.
	ErrReplyNotFound = errors.New("reply destination not found")

	// ErrMalformedPayload marks an unparseable callback payload. The event
	// is acknowledged and discarded with no user-visible effect.
	ErrMalformedPayload = errors.New("malformed callback payload")
)
