package commands

import (
	"errors"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrEndJobCommandIsNotConstructed = errors.New(
	"EndJobCommand must be created via NewEndJobCommand constructor",
)

// EndJobCommand represents one party finishing an interpretation session.
type EndJobCommand struct { //nolint:recvcheck //using for validation
	jobID       kernel.UUID
	triggeredBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewEndJobCommand creates a command to end a session.
func NewEndJobCommand(jobID, triggeredBy kernel.UUID) (EndJobCommand, error) {
	cmd := EndJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setTriggeredBy(triggeredBy),
	); err != nil {
		return EndJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EndJobCommand) Validate() error {
	return c.guard.Validate(ErrEndJobCommandIsNotConstructed)
}

// JobID returns the booking whose session is ending.
func (c EndJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// TriggeredBy returns the party who ended the session.
func (c EndJobCommand) TriggeredBy() kernel.UUID {
	return c.triggeredBy
}

func (c *EndJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *EndJobCommand) setTriggeredBy(triggeredBy kernel.UUID) error {
	if err := triggeredBy.Validate(); err != nil {
		return err
	}

	c.triggeredBy = triggeredBy
	return nil
}
