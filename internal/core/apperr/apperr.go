package apperr

import (
	"errors"
	"strings"
)

// Kind is the closed set of failure categories surfaced by core services.
// Both transport front-ends map kinds to status codes through the same table,
// so a service never needs to know which surface invoked it.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotAuthenticated
	KindNotAuthorized
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationFailed"
	case KindNotAuthenticated:
		return "NotAuthenticated"
	case KindNotAuthorized:
		return "NotAuthorized"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindUnavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}

// Violation is a single field-level problem reported by input validation.
// Validation aggregates every violation so a caller can report them all at once.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a tagged domain error. Violations is populated only for KindValidation.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	cause      error
}

func (e *Error) Error() string {
	if e.Kind == KindValidation && len(e.Violations) > 0 {
		msgs := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			msgs[i] = v.Field + ": " + v.Message
		}
		return e.Message + " (" + strings.Join(msgs, "; ") + ")"
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match two tagged errors by kind alone.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New creates a tagged error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap tags an underlying error with a kind while keeping the cause chain intact.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Validation builds a KindValidation error carrying the full violation list.
func Validation(violations ...Violation) *Error {
	return &Error{
		Kind:       KindValidation,
		Message:    "invalid input",
		Violations: violations,
	}
}

// Unavailable wraps an infrastructure failure without leaking its detail
// beyond the wrapped cause, which stays server-side.
func Unavailable(cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: "service unavailable", cause: cause}
}

// KindOf reports the kind of err, or KindUnknown for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ViolationsOf returns the violation list carried by err, if any.
func ViolationsOf(err error) []Violation {
	var e *Error
	if errors.As(err, &e) {
		return e.Violations
	}
	return nil
}

// IsKind reports whether err is a tagged error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
