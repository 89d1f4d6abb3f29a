package commands

import (
	"context"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/ports"
)

// Notifier is the slice of the notification dispatcher the command handlers
// depend on. Every method is fire-and-forget: delivery failures are logged
// inside the dispatcher and never surface here.
type Notifier interface {
	BroadcastNewJob(ctx context.Context, j *job.Job, language string, eligible []*user.User)
	NotifyUser(ctx context.Context, jobID kernel.UUID, recipient *user.User, text string, payload ports.NotificationPayload, urgent bool)
	SendSMS(ctx context.Context, j *job.Job, town string, translators []*user.User) int
	SendEmail(ctx context.Context, jobID kernel.UUID, email ports.Email)
}
