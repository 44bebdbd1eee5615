package usecase

import (
	crerr "github.com/cockroachdb/errors"
)

// Sentinel errors shared across services. HTTP handlers map these to
// status codes, so wrap them with %w when adding context.
var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)

func IsNotFound(err error) bool {
	return crerr.Is(err, ErrNotFound)
}
