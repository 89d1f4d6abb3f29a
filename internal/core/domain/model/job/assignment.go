package job

import (
	"time"

	"tolkbook/internal/core/domain/model/kernel"
)

// Assignment is the bounded relation between one translator and one booking.
// An assignment opens when the translator takes the booking and closes either
// by cancellation (cancelAt set) or completion (completedAt and completedBy
// set). The Job aggregate owns the ordered history of its assignments.
type Assignment struct {
	id           kernel.UUID
	translatorID kernel.UUID
	assignedAt   time.Time
	cancelAt     *time.Time
	completedAt  *time.Time
	completedBy  *kernel.UUID
}

func newAssignment(translatorID kernel.UUID, at time.Time) Assignment {
	return Assignment{
		id:           kernel.NewUUID(),
		translatorID: translatorID,
		assignedAt:   at,
	}
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id kernel.UUID,
	translatorID kernel.UUID,
	assignedAt time.Time,
	cancelAt *time.Time,
	completedAt *time.Time,
	completedBy *kernel.UUID,
) Assignment {
	return Assignment{
		id:           id,
		translatorID: translatorID,
		assignedAt:   assignedAt,
		cancelAt:     cancelAt,
		completedAt:  completedAt,
		completedBy:  completedBy,
	}
}

// ID returns the assignment's unique identifier.
func (a Assignment) ID() kernel.UUID {
	return a.id
}

// TranslatorID returns the translator holding (or having held) the booking.
func (a Assignment) TranslatorID() kernel.UUID {
	return a.translatorID
}

// AssignedAt returns when the assignment was opened.
func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// CancelAt returns when the assignment was cancelled, or nil if it was not.
func (a Assignment) CancelAt() *time.Time {
	return a.cancelAt
}

// CompletedAt returns when the assignment was completed, or nil.
func (a Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

// CompletedBy returns the party the completion was attributed to, or nil.
func (a Assignment) CompletedBy() *kernel.UUID {
	return a.completedBy
}

// IsOpen reports whether the assignment is the current one: neither
// cancelled nor completed.
func (a Assignment) IsOpen() bool {
	return a.cancelAt == nil && a.completedAt == nil
}
