// Package ids validates and mints entity identifiers. Identifiers are UUID
// strings; validation is pure and performs no store access.
package ids

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalid indicates an externally supplied reference is not a well-formed
// identifier.
var ErrInvalid = errors.New("malformed identifier")

// New mints a fresh identifier.
func New() string {
	return uuid.NewString()
}

// Validate rejects empty or malformed identifiers before any lookup.
func Validate(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return ErrInvalid
	}
	if _, err := uuid.Parse(ref); err != nil {
		return ErrInvalid
	}
	return nil
}

// Valid reports whether ref is a well-formed identifier.
func Valid(ref string) bool {
	return Validate(ref) == nil
}
