package commands

import (
	"context"
	"time"

	"tolkbook/internal/core/application/notifications"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/ports"
)

// AcceptJobCommandHandler handles a translator taking a pending booking.
//
// The accept race is resolved with a compare-and-set on the stored status:
// the persistence layer applies the update only if the row is still
// pending, so exactly one concurrent caller wins. Losers get a localized
// failure and mutate nothing.
type AcceptJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	languages  ports.LanguageCatalog

	// notifyTranslatorPush, when set, additionally pushes a direct acceptance
	// confirmation to the accepting translator. This is the acceptJobWithId
	// variant.
	notifyTranslatorPush bool
}

// NewAcceptJobCommandHandler creates the plain accept handler: acceptance
// email to the customer, localized result to the translator.
func NewAcceptJobCommandHandler(uowFactory UoWFactory, notifier Notifier, languages ports.LanguageCatalog) AcceptJobCommandHandler {
	return AcceptJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		languages:  languages,
	}
}

// NewAcceptJobByIDCommandHandler creates the accept variant that also
// pushes a "booking accepted" notification to the accepting translator.
func NewAcceptJobByIDCommandHandler(uowFactory UoWFactory, notifier Notifier, languages ports.LanguageCatalog) AcceptJobCommandHandler {
	return AcceptJobCommandHandler{
		uowFactory:           uowFactory,
		notifier:             notifier,
		languages:            languages,
		notifyTranslatorPush: true,
	}
}

// Handle processes the accept command and returns a localized result.
func (h *AcceptJobCommandHandler) Handle(ctx context.Context, cmd AcceptJobCommand) (Result, error) {
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

	jobRepo := uow.JobRepository()
	aggregate, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return Result{}, err
	}

	language, err := h.languages.NameByID(ctx, aggregate.LanguageID())
	if err != nil {
		return Result{}, err
	}

	start, end := aggregate.TimeRange()
	booked, err := jobRepo.IsTranslatorBookedAt(ctx, cmd.TranslatorID(), start, end)
	if err != nil {
		return Result{}, err
	}
	if booked {
		return failResult(CodeDoubleBooked, notifications.AcceptDoubleBookedText(aggregate.Due())), nil
	}

	if err = aggregate.Accept(cmd.TranslatorID(), now); err != nil {
		return failResult(CodeJobTaken,
			notifications.AcceptAlreadyTakenText(language, aggregate.Duration(), aggregate.Due())), nil
	}

	won, err := jobRepo.UpdateWithExpectedStatus(ctx, aggregate, job.Pending)
	if err != nil {
		return Result{}, err
	}
	if !won {
		return failResult(CodeJobTaken,
			notifications.AcceptAlreadyTakenText(language, aggregate.Duration(), aggregate.Due())), nil
	}

	customer, err := uow.UserRepository().Get(ctx, aggregate.CustomerID())
	if err != nil {
		return Result{}, err
	}
	var translator *user.User
	if h.notifyTranslatorPush {
		if translator, err = uow.UserRepository().Get(ctx, cmd.TranslatorID()); err != nil {
			return Result{}, err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	h.sendAcceptanceEmail(ctx, aggregate, customer)
	if h.notifyTranslatorPush {
		h.notifier.NotifyUser(ctx, aggregate.ID(), translator,
			notifications.BookingAcceptedText(language, aggregate.Duration(), aggregate.Due()),
			notifications.JobAccepted{
				JobID:    aggregate.ID(),
				Language: language,
				Duration: aggregate.Duration(),
				Due:      aggregate.Due(),
			}, false)
	}

	return successResult(
		notifications.AcceptSuccessText(language, aggregate.Duration(), aggregate.Due())), nil
}

func (h *AcceptJobCommandHandler) sendAcceptanceEmail(ctx context.Context, j *job.Job, customer *user.User) {
	email := j.ContactEmail()
	if email == "" {
		email = customer.Email()
	}
	h.notifier.SendEmail(ctx, j.ID(), ports.Email{
		To:         email,
		ToName:     customer.Name(),
		Subject:    notifications.JobAcceptedSubject(j.ID()),
		TemplateID: notifications.TemplateJobAccepted,
		Data: map[string]any{
			"job_id": j.ID().String(),
			"due":    j.Due(),
		},
	})
}
