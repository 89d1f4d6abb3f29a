package commands

import (
	"context"
	"log/slog"
	"time"
)

// ExpireJobsCommandHandler times out pending bookings whose acceptance
// window closed. Runs from the background sweeper; this is a system
// transition, so the admin-comment rule for manual expiry does not apply.
type ExpireJobsCommandHandler struct {
	uowFactory JobUoWFactory
	logger     *slog.Logger
}

// NewExpireJobsCommandHandler creates the expiry sweeper handler.
func NewExpireJobsCommandHandler(uowFactory JobUoWFactory, logger *slog.Logger) ExpireJobsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ExpireJobsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(slog.String("component", "expire_jobs")),
	}
}

// Handle expires every overdue pending booking and returns how many were
// timed out. Individual failures are logged and skipped so one bad row
// does not stall the sweep.
func (h *ExpireJobsCommandHandler) Handle(ctx context.Context) (int, error) {
	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.JobRepository().GetExpiredPending(ctx, now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, aggregate := range expired {
		if err = aggregate.MarkTimedOut(now); err != nil {
			h.logger.Warn("skipping job during expiry sweep",
				slog.String("job_id", aggregate.ID().String()),
				slog.Any("error", err))
			continue
		}
		if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
			h.logger.Warn("failed to persist expiry",
				slog.String("job_id", aggregate.ID().String()),
				slog.Any("error", err))
			continue
		}
		count++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return count, nil
}
