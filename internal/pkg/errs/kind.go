package errs

import "errors"

// Kind is the stable, machine-readable classification of an error.
type Kind string

const (
	KindNone              Kind = ""
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindInvalidTransition Kind = "invalid_transition"
	KindValidationFailed  Kind = "validation_failed"
	KindAllocationFailed  Kind = "allocation_failed"
	KindConflictDetected  Kind = "conflict_detected"
	KindInternal          Kind = "internal"
)

// KindOf classifies err. Checks run from the most to the least specific kind,
// so a joined error carrying both a transition and a validation failure is
// reported as an invalid transition.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrCorruptedRecord):
		return KindInternal
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidationFailed
	case errors.Is(err, ErrAllocationFailed):
		return KindAllocationFailed
	case errors.Is(err, ErrConflictDetected):
		return KindConflictDetected
	default:
		return KindInternal
	}
}

// Retryable reports whether a caller may retry the whole operation.
// Business-rule failures are terminal for the request.
func (k Kind) Retryable() bool {
	return k == KindAllocationFailed || k == KindConflictDetected
}

func (k Kind) String() string {
	return string(k)
}
