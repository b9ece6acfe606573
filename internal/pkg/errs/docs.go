// Package errs provides standardized error types for the print-shop workflow engine.
// Every error the engine returns to a caller belongs to one of a small set of
// kinds, so transports can map them to stable status codes without inspecting
// message text.
//
// The package includes:
//   - ObjectNotFoundError: the target entity does not exist
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: field
//     validation failures, all reported as the validation_failed kind
//   - UnauthorizedError: the actor's role is insufficient for the action
//   - InvalidTransitionError: the entity's current state does not allow the action
//   - AllocationFailedError: a document number could not be issued
//   - ConflictDetectedError: a concurrent write collided with this one
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across wrapping
//
// KindOf classifies any error, including joined and wrapped ones, into a Kind.
package errs
