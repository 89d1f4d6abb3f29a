package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the sentinel for all input validation failures.
	ErrValidation = errors.New("value is invalid")

	// ErrConflict is the sentinel for operations that lost a race or would
	// violate a booking constraint (double booking, job already taken).
	ErrConflict = errors.New("operation conflicts with current state")

	// ErrObjectNotFound is the sentinel for lookups of unknown jobs or users.
	ErrObjectNotFound = errors.New("object not found")

	// ErrTransitionRejected is the sentinel for status changes that failed
	// a precondition and were left as a no-op.
	ErrTransitionRejected = errors.New("status transition rejected")

	// ErrDeliveryFailure is the sentinel for outbound channel failures.
	// These are logged and never abort a persisted state change.
	ErrDeliveryFailure = errors.New("notification delivery failed")
)

// ValidationError reports a missing or malformed input value.
// FieldName identifies the offending field so API consumers can
// highlight it; it mirrors the wire name of the field.
type ValidationError struct {
	FieldName string
	Cause     error
}

func NewValidationError(fieldName string) *ValidationError {
	return &ValidationError{FieldName: fieldName}
}

func NewValidationErrorWithCause(fieldName string, cause error) *ValidationError {
	return &ValidationError{FieldName: fieldName, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, e.FieldName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.FieldName)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError reports an operation that cannot proceed because of the
// current state of a job: the job was accepted by another translator, the
// translator is double-booked, or a cancellation fell inside the 24h window.
type ConflictError struct {
	Reason string
	Cause  error
}

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

func NewConflictErrorWithCause(reason string, cause error) *ConflictError {
	return &ConflictError{Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ObjectNotFoundError reports a lookup of an id that does not exist.
// ParamName names the parameter that carried the id.
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
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// TransitionRejectedError reports a status change that failed its
// precondition, e.g. a missing admin comment. Callers treat it as a
// silent no-op on the job rather than a hard failure.
type TransitionRejectedError struct {
	From   string
	To     string
	Reason string
}

func NewTransitionRejectedError(from, to, reason string) *TransitionRejectedError {
	return &TransitionRejectedError{From: from, To: to, Reason: reason}
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("%s: %s -> %s (%s)", ErrTransitionRejected, e.From, e.To, e.Reason)
}

func (e *TransitionRejectedError) Unwrap() error {
	return ErrTransitionRejected
}

// DeliveryFailureError reports an outbound push, SMS, or email failure.
// Channel names the transport; Recipient identifies the target address
// or tag so operators can retry by hand.
type DeliveryFailureError struct {
	Channel   string
	Recipient string
	Cause     error
}

func NewDeliveryFailureError(channel, recipient string, cause error) *DeliveryFailureError {
	return &DeliveryFailureError{Channel: channel, Recipient: recipient, Cause: cause}
}

func (e *DeliveryFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s to %s (cause: %s)", ErrDeliveryFailure, e.Channel, e.Recipient, e.Cause)
	}
	return fmt.Sprintf("%s: %s to %s", ErrDeliveryFailure, e.Channel, e.Recipient)
}

func (e *DeliveryFailureError) Unwrap() error {
	return ErrDeliveryFailure
}
