package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAllocationFailed  = errors.New("allocation failed")
	ErrConflictDetected  = errors.New("conflict detected")
	ErrCorruptedRecord   = errors.New("corrupted record")
)

// sanitize flattens values that end up in error messages onto a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause.Error())
}

// ObjectNotFoundError reports that an entity with the given identifier does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrObjectNotFound.Error(), e.ParamName, sanitize(e.ID))
	return withCause(msg, e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired.Error(), e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that is present but not acceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid.Error(), e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside the inclusive [Min, Max] range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange.Error(), e.ParamName, sanitize(e.Value), sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// UnauthorizedError reports that a role may not perform an action.
// Reason is safe to show to the caller.
type UnauthorizedError struct {
	Action string
	Role   string
	Reason string
}

func NewUnauthorizedError(action, role, reason string) *UnauthorizedError {
	return &UnauthorizedError{Action: action, Role: role, Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: role %s cannot %s: %s", ErrUnauthorized.Error(), e.Role, e.Action, e.Reason)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidTransitionError reports an action requested from a state that does not allow it.
// Current is the entity's state, Requested the state the action would have produced.
type InvalidTransitionError struct {
	Entity    string
	Action    string
	Current   string
	Requested string
}

func NewInvalidTransitionError(entity, action, current, requested string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, Action: action, Current: current, Requested: requested}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s from %s to %s",
		ErrInvalidTransition.Error(), e.Action, e.Entity, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AllocationFailedError reports that a document number could not be issued for Key.
type AllocationFailedError struct {
	Key   string
	Cause error
}

func NewAllocationFailedError(key string, cause error) *AllocationFailedError {
	return &AllocationFailedError{Key: key, Cause: cause}
}

func (e *AllocationFailedError) Error() string {
	return withCause(fmt.Sprintf("%s: sequence %s", ErrAllocationFailed.Error(), e.Key), e.Cause)
}

func (e *AllocationFailedError) Unwrap() error {
	return ErrAllocationFailed
}

// ConflictDetectedError reports a concurrent write on the same entity.
type ConflictDetectedError struct {
	Entity string
	ID     any
	Cause  error
}

func NewConflictDetectedError(entity string, id any) *ConflictDetectedError {
	return &ConflictDetectedError{Entity: entity, ID: id}
}

func NewConflictDetectedErrorWithCause(entity string, id any, cause error) *ConflictDetectedError {
	return &ConflictDetectedError{Entity: entity, ID: id, Cause: cause}
}

func (e *ConflictDetectedError) Error() string {
	msg := fmt.Sprintf("%s: %s %s was modified concurrently", ErrConflictDetected.Error(), e.Entity, sanitize(e.ID))
	return withCause(msg, e.Cause)
}

func (e *ConflictDetectedError) Unwrap() error {
	return ErrConflictDetected
}

// CorruptedRecordError reports a stored row that no longer decodes into its
// aggregate. Cause is kept in the message only and is never unwrapped.
type CorruptedRecordError struct {
	Entity string
	ID     any
	Cause  error
}

func NewCorruptedRecordError(entity string, id any, cause error) *CorruptedRecordError {
	return &CorruptedRecordError{Entity: entity, ID: id, Cause: cause}
}

func (e *CorruptedRecordError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrCorruptedRecord.Error(), e.Entity, sanitize(e.ID))
	return withCause(msg, e.Cause)
}

func (e *CorruptedRecordError) Unwrap() error {
	return ErrCorruptedRecord
}
