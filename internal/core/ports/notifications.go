package ports

import (
	"context"
	"time"

	"tolkbook/internal/core/domain/model/kernel"
)

// NotificationPayload is the closed set of notification data variants. Each
// variant names its kind through NotificationType and carries its required
// fields explicitly.
type NotificationPayload interface {
	NotificationType() string
}

// PushRecipient identifies one push target. Providers address devices by
// the account email tag.
type PushRecipient struct {
	UserID kernel.UUID
	Email  string
}

// PushMessage is the provider-neutral push envelope. Contents maps language
// code to localized body text. A non-nil DeliverAfter defers delivery to
// that instant instead of scheduling in-process.
type PushMessage struct {
	JobID        kernel.UUID
	Recipients   []PushRecipient
	Title        string
	Contents     map[string]string
	Urgent       bool
	Payload      NotificationPayload
	DeliverAfter *time.Time
}

// PushSender submits push notifications to the provider. Failures are
// reported for logging only and never abort the caller's state change.
type PushSender interface {
	Send(ctx context.Context, msg PushMessage) error
}

// SMSSender delivers a single text message.
type SMSSender interface {
	Send(ctx context.Context, from, to, text string) error
}

// Email is one outbound mail: a recipient, a template and its data.
type Email struct {
	To         string
	ToName     string
	Subject    string
	TemplateID string
	Data       map[string]any
}

// Mailer queues an email for delivery. Failures never abort the caller's
// state change.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
