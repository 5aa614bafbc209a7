package domain

import "errors"

// ErrorKind classifies domain failures so the transport layer can map
// them to status codes without inspecting message text.
type ErrorKind int

const (
	// KindInvalidArgument marks malformed input.
	KindInvalidArgument ErrorKind = iota
	// KindInvalidState marks a business-rule or state-machine violation.
	KindInvalidState
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
)

// Error is a domain failure with a kind and a human-readable reason.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// NewInvalidArgument builds an InvalidArgument error.
func NewInvalidArgument(reason string) error {
	return &Error{Kind: KindInvalidArgument, Reason: reason}
}

// NewInvalidState builds an InvalidState error.
func NewInvalidState(reason string) error {
	return &Error{Kind: KindInvalidState, Reason: reason}
}

// NewNotFound builds a NotFound error.
func NewNotFound(reason string) error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

// KindOf extracts the error kind, reporting false for non-domain errors.
func KindOf(err error) (ErrorKind, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind, true
	}
	return 0, false
}

// IsInvalidArgument reports whether err is a domain InvalidArgument error.
func IsInvalidArgument(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindInvalidArgument
}

// IsInvalidState reports whether err is a domain InvalidState error.
func IsInvalidState(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindInvalidState
}

// IsNotFound reports whether err is a domain NotFound error.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}
