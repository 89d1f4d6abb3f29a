package jobs

import (
	"context"
	"log/slog"

	"tolkbook/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// JobExpiryJob manages the scheduled expiry of pending bookings.
// Runs every minute to time out bookings whose acceptance window closed.
type JobExpiryJob struct {
	handler commands.ExpireJobsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewJobExpiryJob creates a new job for expiring stale bookings.
// Uses ExpireJobsCommandHandler to run the sweep every minute.
func NewJobExpiryJob(handler commands.ExpireJobsCommandHandler, logger *slog.Logger) *JobExpiryJob {
	return &JobExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "job_expiry_job"),
	}
}

// Start begins the expiry job to run every minute.
func (j *JobExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		count, err := j.handler.Handle(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Booking expiry sweep failed", "error", err)
			return
		}
		if count > 0 {
			j.logger.InfoContext(ctx, "Expired stale bookings", "count", count)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Booking expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry job.
func (j *JobExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Booking expiry job stopped")
}
