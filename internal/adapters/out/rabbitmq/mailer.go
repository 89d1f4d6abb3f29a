package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"tolkbook/internal/core/ports"
)

const mailQueue = "tolkbook.mail"

// Mailer implements ports.Mailer by queueing mail for the worker that
// renders templates and talks to the mail provider. Queueing decouples
// booking operations from provider latency and outages.
type Mailer struct {
	channel *amqp.Channel
}

// NewMailer declares the mail queue and returns a mailer publishing to it.
func NewMailer(channel *amqp.Channel) (*Mailer, error) {
	if channel == nil {
		return nil, fmt.Errorf("amqp channel is required")
	}
	_, err := channel.QueueDeclare(mailQueue, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare mail queue: %w", err)
	}
	return &Mailer{channel: channel}, nil
}

type mailMessage struct {
	Recipient     string         `json:"recipient"`
	RecipientName string         `json:"recipientName,omitempty"`
	Subject       string         `json:"subject"`
	Template      string         `json:"template"`
	Data          map[string]any `json:"data,omitempty"`
}

// Send queues one email for delivery.
func (m *Mailer) Send(ctx context.Context, email ports.Email) error {
	body, err := json.Marshal(mailMessage{
		Recipient:     email.To,
		RecipientName: email.ToName,
		Subject:       email.Subject,
		Template:      email.TemplateID,
		Data:          email.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}

	err = m.channel.PublishWithContext(
		ctx,
		"",
		mailQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to queue mail: %w", err)
	}
	return nil
}
