package commands

import (
	"context"
	"errors"
	"time"

	"tolkbook/internal/core/application/notifications"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrStartJobCommandIsNotConstructed = errors.New(
	"StartJobCommand must be created via NewStartJobCommand constructor",
)

// StartJobCommand represents the translator starting the interpretation
// session of an assigned booking.
type StartJobCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	translatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartJobCommand creates a command to start a session.
func NewStartJobCommand(jobID, translatorID kernel.UUID) (StartJobCommand, error) {
	cmd := StartJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setTranslatorID(translatorID),
	); err != nil {
		return StartJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartJobCommand) Validate() error {
	return c.guard.Validate(ErrStartJobCommandIsNotConstructed)
}

// JobID returns the booking whose session is starting.
func (c StartJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// TranslatorID returns the translator starting the session.
func (c StartJobCommand) TranslatorID() kernel.UUID {
	return c.translatorID
}

func (c *StartJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *StartJobCommand) setTranslatorID(translatorID kernel.UUID) error {
	if err := translatorID.Validate(); err != nil {
		return err
	}

	c.translatorID = translatorID
	return nil
}

// StartJobCommandHandler begins an interpretation session. Only the
// translator holding the assignment may start it.
type StartJobCommandHandler struct {
	uowFactory JobUoWFactory
}

// NewStartJobCommandHandler creates a handler for starting sessions.
func NewStartJobCommandHandler(uowFactory JobUoWFactory) StartJobCommandHandler {
	return StartJobCommandHandler{uowFactory: uowFactory}
}

// Handle processes the start-session command.
func (h *StartJobCommandHandler) Handle(ctx context.Context, cmd StartJobCommand) (Result, error) {
	if err := cmd.Validate(); err != nil {
		return Result{}, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Result{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return Result{}, err
	}

	current := aggregate.CurrentAssignment()
	if current == nil || !current.TranslatorID().IsEqual(cmd.TranslatorID()) {
		return failResult(CodeNotTransitable, notifications.NotYourBookingText()), nil
	}
	if err = aggregate.Start(now); err != nil {
		return failResult(CodeNotTransitable, err.Error()), nil
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return Result{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	return successResult(""), nil
}
