package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into the HTTP error envelope; a not-found result is deliberately
// indistinguishable from a forbidden one so record existence never leaks.
var (
	ErrNotFound        = errors.New("record not found")
	ErrNoResume        = errors.New("no resume found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrQuotaExceeded   = errors.New("guest request limit reached")
	ErrEmailTaken      = errors.New("user already exists")
)

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
