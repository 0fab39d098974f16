package services

import (
	"errors"

	"github.com/blipsapp/backend/internal/repositories"
)

// Error taxonomy surfaced to callers. Username conflicts are not here on
// purpose: a taken username is an expected outcome and is reported as a
// boolean result, not an error.
var (
	// ErrNotFound means a referenced blip, comment or user does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the requester does not own the target resource
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput means the request failed validation before any write
	ErrInvalidInput = errors.New("invalid input")
)

// mapNotFound translates the storage layer's not-found sentinel into the
// service taxonomy, leaving other errors untouched.
func mapNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
