package ports

import (
	"context"
	"time"

	"tolkbook/internal/core/domain/model/kernel"
)

// JobCreatedEvent signals a new booking entered the pending pool.
type JobCreatedEvent struct {
	JobID      kernel.UUID
	CustomerID kernel.UUID
	Due        time.Time
	Immediate  bool
}

// JobCanceledEvent signals a withdrawal, by either party.
type JobCanceledEvent struct {
	JobID      kernel.UUID
	CanceledBy kernel.UUID
	Status     string
}

// SessionEndedEvent signals a completed session and carries the party the
// completion was attributed to.
type SessionEndedEvent struct {
	JobID       kernel.UUID
	CompletedBy kernel.UUID
	SessionTime string
}

// EventPublisher emits fire-and-forget domain events for external
// observers. Publishing happens only after the state change is committed;
// failures are logged and never propagated.
type EventPublisher interface {
	PublishJobCreated(ctx context.Context, event JobCreatedEvent) error
	PublishJobCanceled(ctx context.Context, event JobCanceledEvent) error
	PublishSessionEnded(ctx context.Context, event SessionEndedEvent) error
}
