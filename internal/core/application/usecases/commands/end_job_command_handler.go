package commands

import (
	"context"
	"time"

	"tolkbook/internal/core/application/notifications"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/ports"
)

// EndJobCommandHandler completes a started session.
//
// Ending a booking that never started is a success no-op with zero side
// effects. On completion the customer gets the invoice email, the
// translator the payroll email, and a session-ended event is emitted
// carrying the party the completion was attributed to.
type EndJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	events     ports.EventPublisher
}

// NewEndJobCommandHandler creates a handler for ending sessions.
func NewEndJobCommandHandler(uowFactory UoWFactory, notifier Notifier, events ports.EventPublisher) EndJobCommandHandler {
	return EndJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		events:     events,
	}
}

// Handle processes the end-session command.
func (h *EndJobCommandHandler) Handle(ctx context.Context, cmd EndJobCommand) (Result, error) {
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
	if aggregate.Status() != job.Started {
		return successResult(""), nil
	}

	result, err := aggregate.End(cmd.TriggeredBy(), now)
	if err != nil {
		return Result{}, err
	}

	customer, err := uow.UserRepository().Get(ctx, aggregate.CustomerID())
	if err != nil {
		return Result{}, err
	}
	translator, err := uow.UserRepository().Get(ctx, result.TranslatorID)
	if err != nil {
		return Result{}, err
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return Result{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	_ = h.events.PublishSessionEnded(ctx, ports.SessionEndedEvent{
		JobID:       aggregate.ID(),
		CompletedBy: result.CompletedBy,
		SessionTime: result.SessionTime,
	})

	customerEmail := aggregate.ContactEmail()
	if customerEmail == "" {
		customerEmail = customer.Email()
	}
	h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
		To:         customerEmail,
		ToName:     customer.Name(),
		Subject:    notifications.SessionEndedSubject(aggregate.ID()),
		TemplateID: notifications.TemplateSessionEnded,
		Data: map[string]any{
			"session_time": result.SessionLabel,
			"for_text":     "faktura",
		},
	})
	h.notifier.SendEmail(ctx, aggregate.ID(), ports.Email{
		To:         translator.Email(),
		ToName:     translator.Name(),
		Subject:    notifications.SessionEndedSubject(aggregate.ID()),
		TemplateID: notifications.TemplateSessionEnded,
		Data: map[string]any{
			"session_time": result.SessionLabel,
			"for_text":     "lön",
		},
	})

	return successResult(""), nil
}
