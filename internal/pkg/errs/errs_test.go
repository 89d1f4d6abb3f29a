package errs_test

import (
	"errors"
	"testing"

	"tolkbook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Run("NewValidationError", func(t *testing.T) {
		err := errs.NewValidationError("from_language_id")

		assert.Equal(t, "from_language_id", err.FieldName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: from_language_id", err.Error())
		assert.Equal(t, errs.ErrValidation, err.Unwrap())
	})

	t.Run("NewValidationErrorWithCause", func(t *testing.T) {
		cause := errors.New("not a timestamp")
		err := errs.NewValidationErrorWithCause("due_date", cause)

		assert.Equal(t, "due_date", err.FieldName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: due_date (cause: not a timestamp)", err.Error())
		assert.True(t, errors.Is(err, errs.ErrValidation))
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("job already taken")

		assert.Equal(t, "job already taken", err.Reason)
		assert.Equal(t, "operation conflicts with current state: job already taken", err.Error())
		assert.True(t, errors.Is(err, errs.ErrConflict))
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("zero rows updated")
		err := errs.NewConflictErrorWithCause("job already taken", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"operation conflicts with current state: job already taken (cause: zero rows updated)",
			err.Error())
	})
}

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("jobId", "123")

		assert.Equal(t, "jobId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 42 (cause: record not found)",
			err.Error())
	})
}

func TestTransitionRejectedError(t *testing.T) {
	err := errs.NewTransitionRejectedError("completed", "timedout", "admin comment required")

	assert.Equal(t, "completed", err.From)
	assert.Equal(t, "timedout", err.To)
	assert.Equal(t,
		"status transition rejected: completed -> timedout (admin comment required)",
		err.Error())
	assert.True(t, errors.Is(err, errs.ErrTransitionRejected))
}

func TestDeliveryFailureError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewDeliveryFailureError("push", "translator@example.com", cause)

		assert.Equal(t, "push", err.Channel)
		assert.Equal(t, "translator@example.com", err.Recipient)
		assert.Equal(t,
			"notification delivery failed: push to translator@example.com (cause: connection refused)",
			err.Error())
		assert.True(t, errors.Is(err, errs.ErrDeliveryFailure))
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewDeliveryFailureError("sms", "+46701234567", nil)

		assert.Equal(t,
			"notification delivery failed: sms to +46701234567",
			err.Error())
	})
}
