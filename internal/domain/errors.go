package domain

import "errors"

// Failure kinds surfaced by the engine. The core never retries: it annotates
// collaborator failures with the operation name and lets the caller decide.
var (
	// ErrStoreUnavailable wraps task store I/O failures.
	ErrStoreUnavailable = errors.New("task store unavailable")

	// ErrDeliveryFailure wraps email delivery failures. Notifications computed
	// before the send are still returned (best-effort, at-most-once).
	ErrDeliveryFailure = errors.New("notification delivery failed")

	// ErrNotFound is returned by the user store for unknown ids/emails.
	ErrNotFound = errors.New("not found")
)
