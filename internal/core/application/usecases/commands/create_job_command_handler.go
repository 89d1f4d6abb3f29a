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

// CreateJobCommandHandler handles the business logic for booking creation.
// Persists the booking, emits the creation event, sends the confirmation
// email, and broadcasts the offer to every eligible translator via push
// and SMS. Side effects run strictly after the booking is committed.
type CreateJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	matcher    services.EligibilityMatcher
	languages  ports.LanguageCatalog
	events     ports.EventPublisher
}

// NewCreateJobCommandHandler creates a handler for booking creation.
func NewCreateJobCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	matcher services.EligibilityMatcher,
	languages ports.LanguageCatalog,
	events ports.EventPublisher,
) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		matcher:    matcher,
		languages:  languages,
		events:     events,
	}
}

// Handle processes the booking creation command. The booking type follows
// from the customer's consumer type; only customers can create bookings.
func (h *CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (Result, error) {
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

	customer, err := uow.UserRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return Result{}, err
	}
	if customer.Role() != user.RoleCustomer {
		return failResult(CodeNotPending, "Translator can not create booking"), nil
	}

	aggregate, err := job.NewJob(cmd.JobID(), cmd.CustomerID(), job.Details{
		LanguageID:      cmd.languageID,
		Immediate:       cmd.immediate,
		Due:             cmd.due,
		Duration:        cmd.duration,
		Gender:          cmd.gender,
		Certified:       cmd.certified,
		JobType:         job.TypeForConsumer(customer.Meta().ConsumerType),
		PhoneBooking:    cmd.phoneBooking,
		PhysicalBooking: cmd.physicalBooking,
		Town:            cmd.town,
		ByAdmin:         cmd.byAdmin,
	}, now)
	if err != nil {
		return Result{}, err
	}
	aggregate.SetContact(cmd.userEmail, cmd.address, cmd.instructions, cmd.town)
	aggregate.SetReference(cmd.reference)

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return Result{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	_ = h.events.PublishJobCreated(ctx, ports.JobCreatedEvent{
		JobID:      aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Due:        aggregate.Due(),
		Immediate:  aggregate.Immediate(),
	})

	h.sendConfirmation(ctx, aggregate, customer)

	b := broadcaster{uowFactory: h.uowFactory, matcher: h.matcher, notifier: h.notifier, languages: h.languages}
	_ = b.broadcast(ctx, aggregate, nil, true)

	return successResult(""), nil
}

func (h *CreateJobCommandHandler) sendConfirmation(ctx context.Context, j *job.Job, customer *user.User) {
	email := j.ContactEmail()
	name := customer.Name()
	if email == "" {
		email = customer.Email()
	}
	h.notifier.SendEmail(ctx, j.ID(), ports.Email{
		To:         email,
		ToName:     name,
		Subject:    notifications.JobCreatedSubject(j.ID()),
		TemplateID: notifications.TemplateJobCreated,
		Data: map[string]any{
			"job_id": j.ID().String(),
			"due":    j.Due(),
		},
	})
}
