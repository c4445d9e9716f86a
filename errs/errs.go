// Package errs holds the sentinel errors shared by the token store layers.
package errs

import "errors"

// Store errors.
var (
	// ErrStoreUnavailable means a backend could not be reached or rejected a
	// write command.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrMalformedRecord means a stored record could not be decoded.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrNotFound means a targeted lookup found nothing.
	ErrNotFound = errors.New("not found")
)

// ErrNotImplemented is returned by operations the store does not support.
var ErrNotImplemented = errors.New("not implemented")
