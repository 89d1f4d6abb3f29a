package commands

import (
	"context"
	"time"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
)

// ReopenJobCommandHandler brings a closed booking back to the pending pool.
//
// A booking that is not timed out is reset in place under its own id. A
// timed-out booking is cloned into a new pending booking whose admin
// comment references the original; the original keeps its history. Either
// way any open assignment is closed with a placeholder entry recording the
// reopening, and the booking is fully re-broadcast.
type ReopenJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	matcher    services.EligibilityMatcher
	languages  ports.LanguageCatalog
}

// NewReopenJobCommandHandler creates a handler for reopening bookings.
func NewReopenJobCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	matcher services.EligibilityMatcher,
	languages ports.LanguageCatalog,
) ReopenJobCommandHandler {
	return ReopenJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		matcher:    matcher,
		languages:  languages,
	}
}

// Handle processes the reopen command and returns the id of the booking
// now pending: the original id for in-place resets, a fresh id for clones.
func (h *ReopenJobCommandHandler) Handle(ctx context.Context, cmd ReopenJobCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return kernel.UUID{}, err
	}

	reopened := aggregate
	if aggregate.Status() == job.TimedOut {
		clone, cloneErr := aggregate.CloneForReopen(kernel.NewUUID(), now)
		if cloneErr != nil {
			return kernel.UUID{}, cloneErr
		}
		aggregate.CloseAssignmentsForReopen(cmd.ActorID(), now)

		if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
			return kernel.UUID{}, err
		}
		if err = uow.JobRepository().Add(ctx, clone); err != nil {
			return kernel.UUID{}, err
		}
		reopened = clone
	} else {
		aggregate.ReopenInPlace(cmd.ActorID(), now)
		if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	b := broadcaster{uowFactory: h.uowFactory, matcher: h.matcher, notifier: h.notifier, languages: h.languages}
	_ = b.broadcast(ctx, reopened, nil, false)

	return reopened.ID(), nil
}
