// Package faults defines the typed failure vocabulary shared by the core
// services. Every failure carries a kind and a human-readable message;
// store-level causes stay reachable through errors.Is / errors.As.
package faults

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers that map it onto transport codes.
type Kind int

const (
	// KindInvalidInput marks malformed identifiers or missing required fields.
	KindInvalidInput Kind = iota + 1
	// KindNotFound marks an absent referenced entity.
	KindNotFound
	// KindForbidden marks a mutation attempted by a non-owner.
	KindForbidden
	// KindConflict marks uniqueness violations such as self-subscription or
	// duplicate playlist membership.
	KindConflict
	// KindStore marks an underlying persistence error, not further interpreted.
	KindStore
)

// Fault is the concrete error type returned by the services.
type Fault struct {
	kind  Kind
	msg   string
	cause error
}

func (f *Fault) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %v", f.msg, f.cause)
	}
	return f.msg
}

// Unwrap exposes the underlying cause, if any.
func (f *Fault) Unwrap() error { return f.cause }

// Kind returns the failure classification.
func (f *Fault) Kind() Kind { return f.kind }

// InvalidInput builds a KindInvalidInput fault.
func InvalidInput(format string, args ...any) *Fault {
	return &Fault{kind: KindInvalidInput, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound fault.
func NotFound(format string, args ...any) *Fault {
	return &Fault{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden fault.
func Forbidden(format string, args ...any) *Fault {
	return &Fault{kind: KindForbidden, msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict fault.
func Conflict(format string, args ...any) *Fault {
	return &Fault{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence error under KindStore, keeping the cause.
func Store(op string, cause error) *Fault {
	return &Fault{kind: KindStore, msg: op, cause: cause}
}

// KindOf classifies an arbitrary error; zero when it is not a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.kind
	}
	return 0
}

// Is reports whether the error is a Fault of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
