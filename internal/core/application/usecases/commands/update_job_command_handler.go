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

// UpdateJobCommandHandler applies an admin edit to a booking.
//
// The edit is applied as independent changes in one transaction: translator
// reassignment, due change, language change, comment updates, then the
// forced status transition. Each applied change is audited separately. A
// rejected transition leaves the status untouched and is reported as a
// silent no-op, never an error.
//
// Change notification emails fire only when the booking's due time is
// still in the future; past-due edits persist quietly.
type UpdateJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	matcher    services.EligibilityMatcher
	languages  ports.LanguageCatalog
}

// NewUpdateJobCommandHandler creates a handler for admin booking edits.
func NewUpdateJobCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	matcher services.EligibilityMatcher,
	languages ports.LanguageCatalog,
) UpdateJobCommandHandler {
	return UpdateJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		matcher:    matcher,
		languages:  languages,
	}
}

// Handle processes the admin edit.
func (h *UpdateJobCommandHandler) Handle(ctx context.Context, cmd UpdateJobCommand) (Result, error) {
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

	var oldTranslator *user.User
	if current := aggregate.CurrentAssignment(); current != nil {
		if t, getErr := uow.UserRepository().Get(ctx, current.TranslatorID()); getErr == nil {
			oldTranslator = t
		}
	}

	translatorChange := aggregate.ChangeTranslator(cmd.translatorID, now)

	oldDue := aggregate.Due()
	dueChanged := false
	if cmd.due != nil {
		_, dueChanged = aggregate.ChangeDue(*cmd.due, now)
	}

	langChanged := false
	if cmd.languageID != nil {
		_, langChanged = aggregate.ChangeLanguage(*cmd.languageID, now)
	}

	if cmd.adminComments != nil {
		aggregate.SetAdminComments(*cmd.adminComments)
	}
	if cmd.reference != nil {
		aggregate.SetReference(*cmd.reference)
	}

	outcome := job.Outcome{}
	if cmd.requestedStatus != nil {
		outcome = aggregate.ApplyStatusChange(*cmd.requestedStatus, job.ChangeContext{
			TranslatorChanged: translatorChange.Changed,
			AdminComments:     aggregate.AdminComments(),
			SessionTime:       cmd.sessionTime,
			Now:               now,
		})
	}

	customer, err := uow.UserRepository().Get(ctx, aggregate.CustomerID())
	if err != nil {
		return Result{}, err
	}
	var newTranslator *user.User
	if translatorChange.NewTranslator != nil {
		if t, getErr := uow.UserRepository().Get(ctx, *translatorChange.NewTranslator); getErr == nil {
			newTranslator = t
		}
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return Result{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	language, langErr := h.languages.NameByID(ctx, aggregate.LanguageID())
	if langErr != nil {
		language = ""
	}

	if aggregate.Due().After(now) {
		if translatorChange.Changed {
			h.sendTranslatorChangedEmails(ctx, aggregate, customer, oldTranslator, newTranslator)
		}
		if dueChanged {
			h.sendBookingChangedEmails(ctx, aggregate, customer, oldTranslator, map[string]any{
				"old_time": oldDue,
				"new_time": aggregate.Due(),
			}, notifications.TemplateChangedDate)
		}
		if langChanged {
			h.sendBookingChangedEmails(ctx, aggregate, customer, oldTranslator, map[string]any{
				"new_lang": language,
			}, notifications.TemplateChangedLanguage)
		}
	}

	h.runStatusEffects(ctx, aggregate, customer, newTranslator, oldTranslator, language, outcome.Effects)

	return successResult(""), nil
}

func (h *UpdateJobCommandHandler) runStatusEffects(
	ctx context.Context,
	aggregate *job.Job,
	customer *user.User,
	newTranslator *user.User,
	oldTranslator *user.User,
	language string,
	effects []job.Effect,
) {
	for _, effect := range effects {
		switch effect {
		case job.EffectEmailReopened:
			h.sendCustomerEmail(ctx, aggregate, customer,
				notifications.JobReopenedSubject(language, aggregate.ID()),
				notifications.TemplateStatusChangedToCustomer, nil)

		case job.EffectRebroadcast:
			b := broadcaster{uowFactory: h.uowFactory, matcher: h.matcher, notifier: h.notifier, languages: h.languages}
			_ = b.broadcast(ctx, aggregate, nil, false)

		case job.EffectEmailAccepted:
			h.sendCustomerEmail(ctx, aggregate, customer,
				notifications.JobAcceptedSubject(aggregate.ID()),
				notifications.TemplateJobAccepted, nil)

		case job.EffectEmailNewTranslator:
			if newTranslator != nil {
				h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
					To:         newTranslator.Email(),
					ToName:     newTranslator.Name(),
					Subject:    notifications.JobAcceptedSubject(aggregate.ID()),
					TemplateID: notifications.TemplateChangedTranslatorNew,
				})
			}

		case job.EffectEmailSessionEnded:
			label := job.SessionLabel(aggregate.SessionTime())
			h.sendCustomerEmail(ctx, aggregate, customer,
				notifications.SessionEndedSubject(aggregate.ID()),
				notifications.TemplateSessionEnded,
				map[string]any{"session_time": label, "for_text": "faktura"})
			if oldTranslator != nil {
				h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
					To:         oldTranslator.Email(),
					ToName:     oldTranslator.Name(),
					Subject:    notifications.SessionEndedSubject(aggregate.ID()),
					TemplateID: notifications.TemplateSessionEnded,
					Data:       map[string]any{"session_time": label, "for_text": "lön"},
				})
			}

		case job.EffectEmailPendingCancellation:
			h.sendCustomerEmail(ctx, aggregate, customer,
				notifications.JobCancellationSubject(aggregate.ID()),
				notifications.TemplatePendingCancellation, nil)

		case job.EffectEmailWithdrawCancellation:
			h.sendCustomerEmail(ctx, aggregate, customer,
				notifications.JobCancellationSubject(aggregate.ID()),
				notifications.TemplatePendingCancellation, nil)
			if oldTranslator != nil {
				h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
					To:         oldTranslator.Email(),
					ToName:     oldTranslator.Name(),
					Subject:    notifications.JobCancellationSubject(aggregate.ID()),
					TemplateID: notifications.TemplateCancelTranslator,
				})
			}

		case job.EffectRemindSessionStart:
			h.sendSessionReminders(ctx, aggregate, customer, newTranslator, language)
		}
	}
}

func (h *UpdateJobCommandHandler) sendSessionReminders(ctx context.Context, aggregate *job.Job, customer, translator *user.User, language string) {
	payload := notifications.SessionReminder{
		JobID:    aggregate.ID(),
		Language: language,
		Duration: aggregate.Duration(),
		Due:      aggregate.Due(),
		Physical: aggregate.PhysicalOnly(),
		Town:     aggregate.Town(),
	}
	text := notifications.SessionReminderText(language, aggregate.Due(), aggregate.Duration(), aggregate.PhysicalOnly(), aggregate.Town())
	h.notifier.NotifyUser(ctx, aggregate.ID(), customer, text, payload, false)
	if translator != nil {
		h.notifier.NotifyUser(ctx, aggregate.ID(), translator, text, payload, false)
	}
}

func (h *UpdateJobCommandHandler) sendTranslatorChangedEmails(ctx context.Context, aggregate *job.Job, customer, oldTranslator, newTranslator *user.User) {
	subject := notifications.TranslatorChangedSubject(aggregate.ID())
	h.sendCustomerEmail(ctx, aggregate, customer, subject, notifications.TemplateChangedTranslatorCustomer, nil)
	if oldTranslator != nil {
		h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
			To:         oldTranslator.Email(),
			ToName:     oldTranslator.Name(),
			Subject:    subject,
			TemplateID: notifications.TemplateChangedTranslatorOld,
		})
	}
	if newTranslator != nil {
		h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
			To:         newTranslator.Email(),
			ToName:     newTranslator.Name(),
			Subject:    subject,
			TemplateID: notifications.TemplateChangedTranslatorNew,
		})
	}
}

func (h *UpdateJobCommandHandler) sendBookingChangedEmails(ctx context.Context, aggregate *job.Job, customer, translator *user.User, data map[string]any, template string) {
	subject := notifications.BookingChangedSubject(aggregate.ID())
	h.sendCustomerEmail(ctx, aggregate, customer, subject, template, data)
	if translator != nil {
		h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
			To:         translator.Email(),
			ToName:     translator.Name(),
			Subject:    subject,
			TemplateID: template,
			Data:       data,
		})
	}
}

func (h *UpdateJobCommandHandler) sendCustomerEmail(ctx context.Context, aggregate *job.Job, customer *user.User, subject, template string, data map[string]any) {
	email := aggregate.ContactEmail()
	if email == "" {
		email = customer.Email()
	}
	h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
		To:         email,
		ToName:     customer.Name(),
		Subject:    subject,
		TemplateID: template,
		Data:       data,
	})
}
