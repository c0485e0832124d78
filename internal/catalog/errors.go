package catalog

import "errors"

var (
	// ErrNotFound covers both a missing row and a row hidden by the
	// visibility rules; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("game not found")

	// ErrForbidden means the caller lacks the role the operation requires.
	ErrForbidden = errors.New("forbidden")

	// ErrBadInput means the request was malformed before any storage
	// access was attempted.
	ErrBadInput = errors.New("bad input")
)
