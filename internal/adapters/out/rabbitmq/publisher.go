// Package rabbitmq publishes domain events and queues outbound email over
// AMQP. Messages are JSON-encoded and routed through a topic exchange;
// consumers (mail workers, reporting) bind their own queues.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tolkbook/internal/core/ports"
)

const eventExchange = "tolkbook.events"

// EventPublisher implements ports.EventPublisher over an AMQP channel.
type EventPublisher struct {
	channel *amqp.Channel
}

// NewEventPublisher declares the event exchange and returns a publisher
// bound to it.
func NewEventPublisher(channel *amqp.Channel) (*EventPublisher, error) {
	if channel == nil {
		return nil, fmt.Errorf("amqp channel is required")
	}
	err := channel.ExchangeDeclare(eventExchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare event exchange: %w", err)
	}
	return &EventPublisher{channel: channel}, nil
}

type jobCreatedMessage struct {
	JobID      string    `json:"jobId"`
	CustomerID string    `json:"customerId"`
	Due        time.Time `json:"due"`
	Immediate  bool      `json:"immediate"`
}

type jobCanceledMessage struct {
	JobID      string `json:"jobId"`
	CanceledBy string `json:"canceledBy"`
	Status     string `json:"status"`
}

type sessionEndedMessage struct {
	JobID       string `json:"jobId"`
	CompletedBy string `json:"completedBy"`
	SessionTime string `json:"sessionTime"`
}

// PublishJobCreated emits a job.created event.
func (p *EventPublisher) PublishJobCreated(ctx context.Context, event ports.JobCreatedEvent) error {
	return p.publish(ctx, "job.created", jobCreatedMessage{
		JobID:      event.JobID.String(),
		CustomerID: event.CustomerID.String(),
		Due:        event.Due,
		Immediate:  event.Immediate,
	})
}

// PublishJobCanceled emits a job.canceled event.
func (p *EventPublisher) PublishJobCanceled(ctx context.Context, event ports.JobCanceledEvent) error {
	return p.publish(ctx, "job.canceled", jobCanceledMessage{
		JobID:      event.JobID.String(),
		CanceledBy: event.CanceledBy.String(),
		Status:     event.Status,
	})
}

// PublishSessionEnded emits a session.ended event.
func (p *EventPublisher) PublishSessionEnded(ctx context.Context, event ports.SessionEndedEvent) error {
	return p.publish(ctx, "session.ended", sessionEndedMessage{
		JobID:       event.JobID.String(),
		CompletedBy: event.CompletedBy.String(),
		SessionTime: event.SessionTime,
	})
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		eventExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}
	return nil
}
