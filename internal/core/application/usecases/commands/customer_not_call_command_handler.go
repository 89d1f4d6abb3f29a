package commands

import (
	"context"
	"time"

	"tolkbook/internal/core/domain/model/job"
)

// CustomerNotCallCommandHandler closes a started session as not carried
// out by the customer. Like ending a session, a booking that never started
// is a success no-op.
type CustomerNotCallCommandHandler struct {
	uowFactory JobUoWFactory
}

// NewCustomerNotCallCommandHandler creates a handler for customer no-shows.
func NewCustomerNotCallCommandHandler(uowFactory JobUoWFactory) CustomerNotCallCommandHandler {
	return CustomerNotCallCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the no-show command.
func (h *CustomerNotCallCommandHandler) Handle(ctx context.Context, cmd CustomerNotCallCommand) (Result, error) {
	if err := cmd.Validate(); err != nil {
		return Result{}, err
	}

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
	if aggregate.Status() != job.Started {
		return successResult(""), nil
	}

	if err = aggregate.MarkNotCarriedOut(time.Now()); err != nil {
		return Result{}, err
	}
	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return Result{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	return successResult(""), nil
}
