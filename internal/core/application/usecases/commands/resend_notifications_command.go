package commands

import (
	"context"
	"errors"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
	"tolkbook/internal/pkg/guard"
)

var ErrResendNotificationCommandIsNotConstructed = errors.New(
	"ResendNotificationCommand must be created via NewResendNotificationCommand constructor",
)

// ResendNotificationCommand re-offers an existing booking to its eligible
// translator pool, over push or SMS. Used by admins when the original
// broadcast needs repeating.
type ResendNotificationCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResendNotificationCommand creates a resend command.
func NewResendNotificationCommand(jobID kernel.UUID) (ResendNotificationCommand, error) {
	cmd := ResendNotificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return ResendNotificationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResendNotificationCommand) Validate() error {
	return c.guard.Validate(ErrResendNotificationCommandIsNotConstructed)
}

// JobID returns the booking whose offer is re-broadcast.
func (c ResendNotificationCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *ResendNotificationCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

// ResendNotificationCommandHandler re-broadcasts a booking's offer.
type ResendNotificationCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	matcher    services.EligibilityMatcher
	languages  ports.LanguageCatalog

	// withSMS selects the SMS variant of the resend operation.
	withSMS bool
}

// NewResendPushCommandHandler creates the push resend handler.
func NewResendPushCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	matcher services.EligibilityMatcher,
	languages ports.LanguageCatalog,
) ResendNotificationCommandHandler {
	return ResendNotificationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		matcher:    matcher,
		languages:  languages,
	}
}

// NewResendSMSCommandHandler creates the SMS resend handler.
func NewResendSMSCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	matcher services.EligibilityMatcher,
	languages ports.LanguageCatalog,
) ResendNotificationCommandHandler {
	return ResendNotificationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		matcher:    matcher,
		languages:  languages,
		withSMS:    true,
	}
}

// Handle re-broadcasts the booking's offer to the current eligible pool.
func (h *ResendNotificationCommandHandler) Handle(ctx context.Context, cmd ResendNotificationCommand) (Result, error) {
	if err := cmd.Validate(); err != nil {
		return Result{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Result{}, err
	}

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return Result{}, err
	}

	b := broadcaster{uowFactory: h.uowFactory, matcher: h.matcher, notifier: h.notifier, languages: h.languages}
	if h.withSMS {
		if err = b.broadcastSMSOnly(ctx, aggregate); err != nil {
			return Result{}, err
		}
	} else if err = b.broadcast(ctx, aggregate, nil, false); err != nil {
		return Result{}, err
	}

	return successResult(""), nil
}
