package notifications

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/ports"
)

// pushTitle is the app name shown on every push notification.
const pushTitle = "DigitalTolk"

// Dispatcher fans a notification out to its recipients across push, SMS and
// email.
//
// Delivery policy:
//   - recipients opted out of all notifications are skipped entirely
//   - the emergency opt-out is honored only for immediate bookings
//   - recipients opted out of night-time pushes are not suppressed but
//     moved to a delayed cohort whose delivery timestamp is the next
//     business time
//   - every channel failure is logged and swallowed; the state change that
//     triggered the notification has already been persisted
type Dispatcher struct {
	push    ports.PushSender
	sms     ports.SMSSender
	mailer  ports.Mailer
	hours   kernel.BusinessHours
	smsFrom string
	logger  *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewDispatcher creates a Dispatcher wired to the given channel providers.
func NewDispatcher(
	push ports.PushSender,
	sms ports.SMSSender,
	mailer ports.Mailer,
	hours kernel.BusinessHours,
	smsFrom string,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if push == nil {
		return nil, errors.New("push sender is required")
	}
	if sms == nil {
		return nil, errors.New("sms sender is required")
	}
	if mailer == nil {
		return nil, errors.New("mailer is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		push:    push,
		sms:     sms,
		mailer:  mailer,
		hours:   hours,
		smsFrom: smsFrom,
		logger:  logger.With(slog.String("component", "notification_dispatcher")),
		now:     time.Now,
	}, nil
}

// BroadcastNewJob offers a pending booking to every eligible translator via
// push. Recipients are split into an instant cohort and a delayed night-time
// cohort; both submissions run in parallel.
func (d *Dispatcher) BroadcastNewJob(ctx context.Context, j *job.Job, language string, eligible []*user.User) {
	instant, delayed := d.splitCohorts(eligible, j.Immediate())
	if len(instant) == 0 && len(delayed) == 0 {
		return
	}

	text := NewBookingText(language, j.Duration(), j.Due(), j.Immediate())
	payload := SuitableJob{
		JobID:     j.ID(),
		Language:  language,
		Duration:  j.Duration(),
		Due:       j.Due(),
		Immediate: j.Immediate(),
	}

	var group errgroup.Group
	if len(instant) > 0 {
		group.Go(func() error {
			d.sendPush(ctx, j.ID(), instant, text, payload, j.Immediate(), nil)
			return nil
		})
	}
	if len(delayed) > 0 {
		deliverAfter := d.hours.NextBusinessTime(d.now())
		group.Go(func() error {
			d.sendPush(ctx, j.ID(), delayed, text, payload, j.Immediate(), &deliverAfter)
			return nil
		})
	}
	_ = group.Wait()
}

// NotifyUser pushes a single notification to one recipient, honoring the
// global opt-out and the night-time delay.
func (d *Dispatcher) NotifyUser(ctx context.Context, jobID kernel.UUID, recipient *user.User, text string, payload ports.NotificationPayload, urgent bool) {
	if recipient == nil || recipient.Meta().OptOutAll {
		return
	}

	var deliverAfter *time.Time
	if recipient.Meta().OptOutNightTime && d.hours.IsNight(d.now()) {
		t := d.hours.NextBusinessTime(d.now())
		deliverAfter = &t
	}
	d.sendPush(ctx, jobID, []*user.User{recipient}, text, payload, urgent, deliverAfter)
}

// SendSMS texts the booking offer to each translator individually and
// returns the number of successful deliveries. A booking reachable both by
// phone and on site is offered in the phone form.
func (d *Dispatcher) SendSMS(ctx context.Context, j *job.Job, town string, translators []*user.User) int {
	var text string
	if j.PhysicalOnly() {
		text = PhysicalJobSMSText(j.Due(), j.Duration(), town, j.ID())
	} else {
		text = PhoneJobSMSText(j.Due(), j.Duration(), j.ID())
	}

	delivered := make(chan struct{}, len(translators))
	var group errgroup.Group
	for _, t := range translators {
		group.Go(func() error {
			if err := d.sms.Send(ctx, d.smsFrom, t.Phone(), text); err != nil {
				d.logger.Warn("sms delivery failed",
					slog.String("job_id", j.ID().String()),
					slog.String("recipient", t.ID().String()),
					slog.Any("error", err))
				return nil
			}
			delivered <- struct{}{}
			return nil
		})
	}
	_ = group.Wait()
	close(delivered)

	count := 0
	for range delivered {
		count++
	}
	return count
}

// SendEmail queues one booking email. Failures are logged with the job id
// and recipient and never propagated.
func (d *Dispatcher) SendEmail(ctx context.Context, jobID kernel.UUID, email ports.Email) {
	if email.To == "" {
		return
	}
	if err := d.mailer.Send(ctx, email); err != nil {
		d.logger.Warn("email delivery failed",
			slog.String("job_id", jobID.String()),
			slog.String("recipient", email.To),
			slog.Any("error", err))
	}
}

func (d *Dispatcher) sendPush(ctx context.Context, jobID kernel.UUID, recipients []*user.User, text string, payload ports.NotificationPayload, urgent bool, deliverAfter *time.Time) {
	targets := make([]ports.PushRecipient, 0, len(recipients))
	for _, r := range recipients {
		targets = append(targets, ports.PushRecipient{UserID: r.ID(), Email: r.Email()})
	}

	msg := ports.PushMessage{
		JobID:        jobID,
		Recipients:   targets,
		Title:        pushTitle,
		Contents:     map[string]string{"en": text},
		Urgent:       urgent,
		Payload:      payload,
		DeliverAfter: deliverAfter,
	}
	if err := d.push.Send(ctx, msg); err != nil {
		d.logger.Warn("push delivery failed",
			slog.String("job_id", jobID.String()),
			slog.Int("recipients", len(targets)),
			slog.Any("error", err))
		return
	}
	d.logger.Info("push sent",
		slog.String("job_id", jobID.String()),
		slog.Int("recipients", len(targets)),
		slog.Bool("delayed", deliverAfter != nil))
}

// splitCohorts applies the opt-out policy to the recipient pool and divides
// the remainder into instant and night-delayed cohorts.
func (d *Dispatcher) splitCohorts(pool []*user.User, immediate bool) (instant, delayed []*user.User) {
	night := d.hours.IsNight(d.now())
	for _, t := range pool {
		if t == nil || t.Meta().OptOutAll {
			continue
		}
		if immediate && t.Meta().OptOutEmergency {
			continue
		}
		if night && t.Meta().OptOutNightTime {
			delayed = append(delayed, t)
			continue
		}
		instant = append(instant, t)
	}
	return instant, delayed
}
