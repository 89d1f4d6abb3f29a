package commands

import (
	"errors"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrAcceptJobCommandIsNotConstructed = errors.New(
	"AcceptJobCommand must be created via NewAcceptJobCommand constructor",
)

// AcceptJobCommand represents a translator's attempt to take a pending
// booking. Concurrent attempts on the same booking resolve to exactly one
// winner; losers receive a localized "already taken" failure.
type AcceptJobCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	translatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptJobCommand creates a command for a translator to accept a booking.
func NewAcceptJobCommand(jobID, translatorID kernel.UUID) (AcceptJobCommand, error) {
	cmd := AcceptJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setTranslatorID(translatorID),
	); err != nil {
		return AcceptJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptJobCommand) Validate() error {
	return c.guard.Validate(ErrAcceptJobCommandIsNotConstructed)
}

// JobID returns the booking being accepted.
func (c AcceptJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// TranslatorID returns the accepting translator.
func (c AcceptJobCommand) TranslatorID() kernel.UUID {
	return c.translatorID
}

func (c *AcceptJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *AcceptJobCommand) setTranslatorID(translatorID kernel.UUID) error {
	if err := translatorID.Validate(); err != nil {
		return err
	}

	c.translatorID = translatorID
	return nil
}
