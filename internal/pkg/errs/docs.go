// Package errs provides the standardized error types of the booking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error type per failure class in the domain:
//   - ValidationError: a required field is missing or malformed on input
//   - ConflictError: an operation lost a race or violates a booking constraint
//   - ObjectNotFoundError: a job or user cannot be found
//   - TransitionRejectedError: a status change failed its precondition
//   - DeliveryFailureError: an outbound push/SMS/email channel failed
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type carrying error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// Delivery failures are always non-fatal: callers log them with the job id and
// recipient and continue. Only ObjectNotFoundError aborts an operation.
package errs
