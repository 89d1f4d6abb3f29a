package commands

import (
	"context"
	"time"

	"tolkbook/internal/core/application/notifications"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
)

// translatorCancelWindow is how long after the due time a translator must
// wait before cancelling through the app.
const translatorCancelWindow = 24 * time.Hour

// CancelJobCommandHandler handles booking cancellations.
//
// A customer may cancel at any time; the notice decides the withdrawal
// classification. A translator may only cancel once the cancellation window
// has elapsed past the due time; the booking then returns to the pending
// pool and is re-broadcast to everyone except the departing translator.
type CancelJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	matcher    services.EligibilityMatcher
	languages  ports.LanguageCatalog
	events     ports.EventPublisher
}

// NewCancelJobCommandHandler creates a handler for booking cancellations.
func NewCancelJobCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	matcher services.EligibilityMatcher,
	languages ports.LanguageCatalog,
	events ports.EventPublisher,
) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		matcher:    matcher,
		languages:  languages,
		events:     events,
	}
}

// Handle processes the cancellation and returns a localized result.
func (h *CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) (Result, error) {
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
	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return Result{}, err
	}
	language, err := h.languages.NameByID(ctx, aggregate.LanguageID())
	if err != nil {
		return Result{}, err
	}

	if actor.Role() == user.RoleTranslator {
		return h.cancelByTranslator(ctx, uow, aggregate, actor, language, now)
	}
	return h.cancelByCustomer(ctx, uow, aggregate, actor, language, now)
}

func (h *CancelJobCommandHandler) cancelByCustomer(
	ctx context.Context,
	uow UoW,
	aggregate *job.Job,
	actor *user.User,
	language string,
	now time.Time,
) (Result, error) {
	var translator *user.User
	if current := aggregate.CurrentAssignment(); current != nil {
		t, err := uow.UserRepository().Get(ctx, current.TranslatorID())
		if err != nil {
			return Result{}, err
		}
		translator = t
	}

	status := aggregate.WithdrawByCustomer(now)
	if err := uow.JobRepository().Update(ctx, aggregate); err != nil {
		return Result{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	_ = h.events.PublishJobCanceled(ctx, ports.JobCanceledEvent{
		JobID:      aggregate.ID(),
		CanceledBy: actor.ID(),
		Status:     status.String(),
	})

	if translator != nil {
		h.notifier.NotifyUser(ctx, aggregate.ID(), translator,
			notifications.CustomerCancelledText(language, aggregate.Duration(), aggregate.Due()),
			notifications.JobCancelled{
				JobID:    aggregate.ID(),
				Language: language,
				Duration: aggregate.Duration(),
				Due:      aggregate.Due(),
			}, false)
	}

	return successResult(""), nil
}

func (h *CancelJobCommandHandler) cancelByTranslator(
	ctx context.Context,
	uow UoW,
	aggregate *job.Job,
	actor *user.User,
	language string,
	now time.Time,
) (Result, error) {
	if now.Sub(aggregate.Due()) <= translatorCancelWindow {
		return failResult(CodeCancelWindow, notifications.TranslatorCancelRejectedText()), nil
	}

	departing, err := aggregate.ReleaseByTranslator(now)
	if err != nil {
		return Result{}, err
	}

	customer, err := uow.UserRepository().Get(ctx, aggregate.CustomerID())
	if err != nil {
		return Result{}, err
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return Result{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	_ = h.events.PublishJobCanceled(ctx, ports.JobCanceledEvent{
		JobID:      aggregate.ID(),
		CanceledBy: actor.ID(),
		Status:     job.Pending.String(),
	})

	h.notifier.NotifyUser(ctx, aggregate.ID(), customer,
		notifications.TranslatorCancelledText(language, aggregate.Duration(), aggregate.Due()),
		notifications.JobCancelled{
			JobID:    aggregate.ID(),
			Language: language,
			Duration: aggregate.Duration(),
			Due:      aggregate.Due(),
		}, false)

	b := broadcaster{uowFactory: h.uowFactory, matcher: h.matcher, notifier: h.notifier, languages: h.languages}
	exclude := departing
	_ = b.broadcast(ctx, aggregate, &exclude, false)

	return successResult(""), nil
}
