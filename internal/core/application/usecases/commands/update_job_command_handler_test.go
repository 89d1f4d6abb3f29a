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
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
)

func completedJob(t *testing.T) *job.Job {
	t.Helper()
	due := time.Now().Add(-48 * time.Hour)
	createdAt := due.Add(-72 * time.Hour)
	endAt := due.Add(time.Hour)
	translatorID := kernel.NewUUID()
	completedBy := translatorID
	j, err := job.RestoreJob(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		job.Completed,
		job.Details{Due: due, Duration: 60, JobType: job.TypePaid, PhoneBooking: true},
		"", "", "", "", "",
		false, false, false,
		createdAt, due,
		&endAt, nil, "1:00:00",
		[]job.Assignment{job.RestoreAssignment(kernel.NewUUID(), translatorID, createdAt, nil, &endAt, &completedBy)},
	)
	require.NoError(t, err)
	return j
}

func TestUpdateJobCommandHandler_Handle_CompletedToTimedOutWithoutComment(t *testing.T) {
	// Arrange: completed -> timedout requires an admin comment.
	ctx := t.Context()
	aggregate := completedJob(t)
	customer := customerUser(t, aggregate.CustomerID())

	requested := job.TimedOut
	cmd, err := commands.NewUpdateJobCommand(aggregate.ID(), commands.UpdateJobChanges{
		RequestedStatus: &requested,
	})
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockUserRepo := new(MockUserRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockNotifier := new(MockNotifier)
	mockLanguages := new(MockLanguageCatalog)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("JobRepository").Return(mockJobRepo)
	mockUoW.On("UserRepository").Return(mockUserRepo)
	mockUoW.On("Commit", ctx).Return(nil)
	mockUoW.On("Rollback", ctx).Return(nil)
	mockJobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	mockJobRepo.On("Update", ctx, aggregate).Return(nil)
	mockUserRepo.On("Get", ctx, aggregate.CustomerID()).Return(customer, nil)
	mockLanguages.On("NameByID", ctx, aggregate.LanguageID()).Return("arabiska", nil)

	handler := commands.NewUpdateJobCommandHandler(mockFactory, mockNotifier, services.NewEligibilityMatcher(), mockLanguages)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert: silent success, status untouched, nothing sent.
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, job.Completed, aggregate.Status())
	mockNotifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
	mockNotifier.AssertNotCalled(t, "BroadcastNewJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateJobCommandHandler_Handle_PendingToWithdrawBefore24(t *testing.T) {
	// Arrange: withdrawing a pending booking emails the customer.
	ctx := t.Context()
	aggregate := pendingJob(t)
	customer := customerUser(t, aggregate.CustomerID())

	requested := job.WithdrawBefore24
	cmd, err := commands.NewUpdateJobCommand(aggregate.ID(), commands.UpdateJobChanges{
		RequestedStatus: &requested,
	})
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockUserRepo := new(MockUserRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockNotifier := new(MockNotifier)
	mockLanguages := new(MockLanguageCatalog)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("JobRepository").Return(mockJobRepo)
	mockUoW.On("UserRepository").Return(mockUserRepo)
	mockUoW.On("Commit", ctx).Return(nil)
	mockUoW.On("Rollback", ctx).Return(nil)
	mockJobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	mockJobRepo.On("Update", ctx, aggregate).Return(nil)
	mockUserRepo.On("Get", ctx, aggregate.CustomerID()).Return(customer, nil)
	mockLanguages.On("NameByID", ctx, aggregate.LanguageID()).Return("arabiska", nil)

	var sent ports.Email
	mockNotifier.On("SendEmail", ctx, aggregate.ID(), mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(2).(ports.Email)
	}).Return()

	handler := commands.NewUpdateJobCommandHandler(mockFactory, mockNotifier, services.NewEligibilityMatcher(), mockLanguages)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, job.WithdrawBefore24, aggregate.Status())
	assert.Equal(t, customer.Email(), sent.To)
	assert.Contains(t, sent.Subject, "Avbokning av bokningsnr")
	mockNotifier.AssertExpectations(t)
}

func TestUpdateJobCommandHandler_Handle_DueChangeEmailsBothParties(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate, translatorID := assignedJobWithDue(t, time.Now().Add(72*time.Hour))
	customer := customerUser(t, aggregate.CustomerID())
	translator := translatorUser(t, translatorID)

	newDue := time.Now().Add(96 * time.Hour).Truncate(time.Second)
	cmd, err := commands.NewUpdateJobCommand(aggregate.ID(), commands.UpdateJobChanges{
		Due: &newDue,
	})
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockUserRepo := new(MockUserRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockNotifier := new(MockNotifier)
	mockLanguages := new(MockLanguageCatalog)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("JobRepository").Return(mockJobRepo)
	mockUoW.On("UserRepository").Return(mockUserRepo)
	mockUoW.On("Commit", ctx).Return(nil)
	mockUoW.On("Rollback", ctx).Return(nil)
	mockJobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	mockJobRepo.On("Update", ctx, aggregate).Return(nil)
	mockUserRepo.On("Get", ctx, aggregate.CustomerID()).Return(customer, nil)
	mockUserRepo.On("Get", ctx, translatorID).Return(translator, nil)
	mockLanguages.On("NameByID", ctx, aggregate.LanguageID()).Return("arabiska", nil)

	var recipients []string
	mockNotifier.On("SendEmail", ctx, aggregate.ID(), mock.Anything).Run(func(args mock.Arguments) {
		recipients = append(recipients, args.Get(2).(ports.Email).To)
	}).Return()

	handler := commands.NewUpdateJobCommandHandler(mockFactory, mockNotifier, services.NewEligibilityMatcher(), mockLanguages)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.True(t, aggregate.Due().Equal(newDue))
	assert.ElementsMatch(t, []string{customer.Email(), translator.Email()}, recipients)
}
