package commands

import (
	"errors"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

// CancelJobCommand represents a booking cancellation by either party.
// Customer cancellations are always allowed; translator cancellations obey
// the 24-hour rule.
type CancelJobCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelJobCommand creates a cancellation command for the given actor.
func NewCancelJobCommand(jobID, actorID kernel.UUID) (CancelJobCommand, error) {
	cmd := CancelJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setActorID(actorID),
	); err != nil {
		return CancelJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}

// JobID returns the booking being cancelled.
func (c CancelJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// ActorID returns who initiated the cancellation.
func (c CancelJobCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CancelJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CancelJobCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
