package cmd

import (
	"fmt"
	"log/slog"

	"tolkbook/internal/adapters/out/onesignal"
	"tolkbook/internal/adapters/out/postgres"
	"tolkbook/internal/adapters/out/postgres/languagerepo"
	"tolkbook/internal/adapters/out/rabbitmq"
	"tolkbook/internal/adapters/out/smsgateway"
	"tolkbook/internal/core/application/notifications"
	"tolkbook/internal/core/application/usecases/commands"
	"tolkbook/internal/core/application/usecases/queries"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Handlers are created per
// call; the shared pieces (DB, broker channel, dispatcher) live here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	languages  ports.LanguageCatalog
	matcher    services.EligibilityMatcher
	notifier   commands.Notifier
	events     ports.EventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the given config,
// database handle and broker channel.
func NewCompositionRoot(config Config, gormDB *gorm.DB, channel *amqp.Channel, logger *slog.Logger) (*CompositionRoot, error) {
	push, err := onesignal.NewSender(config.OneSignalAppID, config.OneSignalAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create push sender: %w", err)
	}
	sms, err := smsgateway.NewSender(config.SMSEndpoint, config.SMSAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create sms sender: %w", err)
	}
	mailer, err := rabbitmq.NewMailer(channel)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}
	events, err := rabbitmq.NewEventPublisher(channel)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	hours, err := kernel.NewBusinessHours(config.BusinessDayStart, config.BusinessDayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid business hours: %w", err)
	}
	notifier, err := notifications.NewDispatcher(push, sms, mailer, hours, config.SMSFromNumber, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		languages:  languagerepo.NewGormLanguageCatalog(gormDB),
		matcher:    services.NewEligibilityMatcher(),
		notifier:   notifier,
		events:     events,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) uowF() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) jobUoWF() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.uowF(), c.notifier, c.matcher, c.languages, c.events)
}

func (c *CompositionRoot) CreateUpdateJobCommandHandler() commands.UpdateJobCommandHandler {
	return commands.NewUpdateJobCommandHandler(c.uowF(), c.notifier, c.matcher, c.languages)
}

func (c *CompositionRoot) CreateAcceptJobCommandHandler() commands.AcceptJobCommandHandler {
	return commands.NewAcceptJobCommandHandler(c.uowF(), c.notifier, c.languages)
}

func (c *CompositionRoot) CreateAcceptJobByIDCommandHandler() commands.AcceptJobCommandHandler {
	return commands.NewAcceptJobByIDCommandHandler(c.uowF(), c.notifier, c.languages)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	return commands.NewCancelJobCommandHandler(c.uowF(), c.notifier, c.matcher, c.languages, c.events)
}

func (c *CompositionRoot) CreateStartJobCommandHandler() commands.StartJobCommandHandler {
	return commands.NewStartJobCommandHandler(c.jobUoWF())
}

func (c *CompositionRoot) CreateEndJobCommandHandler() commands.EndJobCommandHandler {
	return commands.NewEndJobCommandHandler(c.uowF(), c.notifier, c.events)
}

func (c *CompositionRoot) CreateCustomerNotCallCommandHandler() commands.CustomerNotCallCommandHandler {
	return commands.NewCustomerNotCallCommandHandler(c.jobUoWF())
}

func (c *CompositionRoot) CreateReopenJobCommandHandler() commands.ReopenJobCommandHandler {
	return commands.NewReopenJobCommandHandler(c.uowF(), c.notifier, c.matcher, c.languages)
}

func (c *CompositionRoot) CreateResendPushCommandHandler() commands.ResendNotificationCommandHandler {
	return commands.NewResendPushCommandHandler(c.uowF(), c.notifier, c.matcher, c.languages)
}

func (c *CompositionRoot) CreateResendSMSCommandHandler() commands.ResendNotificationCommandHandler {
	return commands.NewResendSMSCommandHandler(c.uowF(), c.notifier, c.matcher, c.languages)
}

func (c *CompositionRoot) CreateSetJobContactCommandHandler() commands.SetJobContactCommandHandler {
	return commands.NewSetJobContactCommandHandler(c.jobUoWF())
}

func (c *CompositionRoot) CreateExpireJobsCommandHandler() commands.ExpireJobsCommandHandler {
	return commands.NewExpireJobsCommandHandler(c.jobUoWF(), c.logger)
}

func (c *CompositionRoot) CreateGetPotentialJobsQueryHandler() queries.GetPotentialJobsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetPotentialJobsQueryHandler(uow.JobRepository(), uow.UserRepository(), c.languages, c.matcher)
}

func (c *CompositionRoot) CreateListJobsQueryHandler() queries.ListJobsQueryHandler {
	return queries.NewListJobsQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}
