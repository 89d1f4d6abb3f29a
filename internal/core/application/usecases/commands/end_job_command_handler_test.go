package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tolkbook/internal/core/application/usecases/commands"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/ports"
)

func startedJob(t *testing.T, due time.Time) (*job.Job, kernel.UUID) {
	t.Helper()
	createdAt := due.Add(-72 * time.Hour)
	translatorID := kernel.NewUUID()
	j, err := job.RestoreJob(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		job.Started,
		job.Details{Due: due, Duration: 60, JobType: job.TypePaid, PhoneBooking: true},
		"", "", "", "", "",
		false, false, false,
		createdAt, due,
		nil, nil, "",
		[]job.Assignment{job.RestoreAssignment(kernel.NewUUID(), translatorID, createdAt, nil, nil, nil)},
	)
	require.NoError(t, err)
	return j, translatorID
}

func TestEndJobCommandHandler_Handle_NotStartedIsNoOp(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := pendingJob(t)

	cmd, err := commands.NewEndJobCommand(aggregate.ID(), aggregate.CustomerID())
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockNotifier := new(MockNotifier)
	mockEvents := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("JobRepository").Return(mockJobRepo)
	mockUoW.On("Rollback", ctx).Return(nil)
	mockJobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)

	handler := commands.NewEndJobCommandHandler(mockFactory, mockNotifier, mockEvents)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert: success with zero side effects.
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, job.Pending, aggregate.Status())
	mockUoW.AssertNotCalled(t, "Commit", ctx)
	mockJobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockNotifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
	mockEvents.AssertNotCalled(t, "PublishSessionEnded", mock.Anything, mock.Anything)
}

func TestEndJobCommandHandler_Handle_CustomerEndsSession(t *testing.T) {
	// Arrange: session began an hour ago, the customer ends it.
	ctx := t.Context()
	aggregate, translatorID := startedJob(t, time.Now().Add(-time.Hour))
	customer := customerUser(t, aggregate.CustomerID())
	translator := translatorUser(t, translatorID)

	cmd, err := commands.NewEndJobCommand(aggregate.ID(), aggregate.CustomerID())
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockUserRepo := new(MockUserRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockNotifier := new(MockNotifier)
	mockEvents := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("JobRepository").Return(mockJobRepo)
	mockUoW.On("UserRepository").Return(mockUserRepo)
	mockUoW.On("Commit", ctx).Return(nil)
	mockUoW.On("Rollback", ctx).Return(nil)
	mockJobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	mockJobRepo.On("Update", ctx, aggregate).Return(nil)
	mockUserRepo.On("Get", ctx, customer.ID()).Return(customer, nil)
	mockUserRepo.On("Get", ctx, translatorID).Return(translator, nil)

	var published ports.SessionEndedEvent
	mockEvents.On("PublishSessionEnded", ctx, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).(ports.SessionEndedEvent)
	}).Return(nil)

	var emails []ports.Email
	mockNotifier.On("SendEmail", ctx, aggregate.ID(), mock.Anything).Run(func(args mock.Arguments) {
		emails = append(emails, args.Get(2).(ports.Email))
	}).Return()

	handler := commands.NewEndJobCommandHandler(mockFactory, mockNotifier, mockEvents)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, job.Completed, aggregate.Status())

	// Completion is attributed to the counterparty of whoever ended it.
	assert.True(t, published.CompletedBy.IsEqual(translatorID))

	require.Len(t, emails, 2)
	assert.Equal(t, customer.Email(), emails[0].To)
	assert.Equal(t, "faktura", emails[0].Data["for_text"])
	assert.Equal(t, translator.Email(), emails[1].To)
	assert.Equal(t, "lön", emails[1].Data["for_text"])
}
