package repositories

import "errors"

// Sentinel errors shared by every store. Services translate them into the
// fault taxonomy; stores never expose raw pg error codes.
var (
	// ErrNotFound reports that no record matched the given key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a write that would violate a uniqueness or check
	// constraint.
	ErrConflict = errors.New("record conflict")
)
