package commands

import (
	"context"
	"errors"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrSetJobContactCommandIsNotConstructed = errors.New(
	"SetJobContactCommand must be created via NewSetJobContactCommand constructor",
)

// SetJobContactCommand updates a booking's contact details: the address
// the session happens at, delivery email for booking mails, free-form
// instructions, and the town.
type SetJobContactCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	email        string
	reference    string
	address      string
	instructions string
	town         string

	guard guard.ConstructorGuard
}

// NewSetJobContactCommand creates a contact update command.
func NewSetJobContactCommand(jobID kernel.UUID, email, reference, address, instructions, town string) (SetJobContactCommand, error) {
	cmd := SetJobContactCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return SetJobContactCommand{}, err
	}

	cmd.email = email
	cmd.reference = reference
	cmd.address = address
	cmd.instructions = instructions
	cmd.town = town

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetJobContactCommand) Validate() error {
	return c.guard.Validate(ErrSetJobContactCommandIsNotConstructed)
}

// JobID returns the booking being updated.
func (c SetJobContactCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *SetJobContactCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

// SetJobContactCommandHandler persists a booking's contact details.
type SetJobContactCommandHandler struct {
	uowFactory JobUoWFactory
}

// NewSetJobContactCommandHandler creates a handler for contact updates.
func NewSetJobContactCommandHandler(uowFactory JobUoWFactory) SetJobContactCommandHandler {
	return SetJobContactCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the contact update.
func (h *SetJobContactCommandHandler) Handle(ctx context.Context, cmd SetJobContactCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	aggregate.SetContact(cmd.email, cmd.address, cmd.instructions, cmd.town)
	aggregate.SetReference(cmd.reference)

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
