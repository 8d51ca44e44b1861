// internal/services/errors.go
package services

import "errors"

// Error kinds raised by services. Handlers translate them to HTTP status
// codes: ErrNotFound -> 404, ErrInvalidOperation -> 400,
// ErrUnauthorized -> 401; anything else -> 500.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthorized     = errors.New("unauthorized")
)
