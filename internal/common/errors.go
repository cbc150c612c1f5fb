// Package common defines the sentinel errors shared by the store, session and
// editor layers of polymap. Callers should use errors.Is to match these values;
// detail is attached by wrapping with fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Credential errors.
	ErrBadCredentials = errors.New("bad credentials")

	// Unique key violations (duplicate tax id on register).
	ErrConflict = errors.New("conflict")

	// Malformed input: bad CPF, short password, confirmation mismatch.
	ErrValidation = errors.New("validation error")

	// Persistence or decoding failures.
	ErrInternal = errors.New("internal error")

	// A login or register call is already in flight.
	ErrBusy = errors.New("operation in progress")
)
