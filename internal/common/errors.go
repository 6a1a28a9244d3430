// Package common defines shared sentinel errors and small helpers used
// across Filedrawer components. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Blob-store errors.
	ErrUploadRejected  = errors.New("upload rejected")
	ErrPayloadTooLarge = errors.New("payload too large")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("session expired")
)
