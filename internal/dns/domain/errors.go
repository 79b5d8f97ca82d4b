package domain

import "errors"

// Sentinel errors for provider failures. Providers wrap their API error
// detail around one of these so callers can branch with errors.Is while
// still surfacing the provider's own message.
var (
	// ErrNotFound indicates the requested domain or record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict.
	ErrConflict = errors.New("conflict")
)
