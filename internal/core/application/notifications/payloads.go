// Package notifications implements the multi-channel fan-out pipeline: push
// with night-time delay policy, SMS template selection, and role-specific
// booking emails. Channel failures are logged and never abort a state change
// that has already been persisted.
package notifications

import (
	"time"

	"tolkbook/internal/core/domain/model/kernel"
)

// SuitableJob is pushed to every eligible translator when a booking enters
// the pending pool.
type SuitableJob struct {
	JobID     kernel.UUID
	Language  string
	Duration  int
	Due       time.Time
	Immediate bool
}

func (SuitableJob) NotificationType() string { return "suitable_job" }

// JobAccepted is pushed when a translator takes a booking.
type JobAccepted struct {
	JobID    kernel.UUID
	Language string
	Duration int
	Due      time.Time
}

func (JobAccepted) NotificationType() string { return "job_accepted" }

// JobCancelled is pushed to the counterparty when either side withdraws.
type JobCancelled struct {
	JobID    kernel.UUID
	Language string
	Duration int
	Due      time.Time
}

func (JobCancelled) NotificationType() string { return "job_cancelled" }

// StatusChanged is pushed when an admin forces a lifecycle transition.
type StatusChanged struct {
	JobID     kernel.UUID
	OldStatus string
	NewStatus string
}

func (StatusChanged) NotificationType() string { return "status_changed" }

// SessionEnded is pushed when a session completes.
type SessionEnded struct {
	JobID       kernel.UUID
	CompletedBy kernel.UUID
	SessionTime string
}

func (SessionEnded) NotificationType() string { return "session_ended" }

// SessionReminder is pushed to both parties shortly before the due time.
type SessionReminder struct {
	JobID    kernel.UUID
	Language string
	Duration int
	Due      time.Time
	Physical bool
	Town     string
}

func (SessionReminder) NotificationType() string { return "session_start_remind" }
