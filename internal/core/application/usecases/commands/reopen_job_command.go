package commands

import (
	"errors"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrReopenJobCommandIsNotConstructed = errors.New(
	"ReopenJobCommand must be created via NewReopenJobCommand constructor",
)

// ReopenJobCommand represents bringing a closed booking back into the
// pending pool. A timed-out booking is cloned under a fresh id; anything
// else is reset in place.
type ReopenJobCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReopenJobCommand creates a reopen command for the given actor.
func NewReopenJobCommand(jobID, actorID kernel.UUID) (ReopenJobCommand, error) {
	cmd := ReopenJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setActorID(actorID),
	); err != nil {
		return ReopenJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReopenJobCommand) Validate() error {
	return c.guard.Validate(ErrReopenJobCommandIsNotConstructed)
}

// JobID returns the booking being reopened.
func (c ReopenJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// ActorID returns who requested the reopening.
func (c ReopenJobCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ReopenJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *ReopenJobCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
