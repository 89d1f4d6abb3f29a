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
	"tolkbook/internal/core/domain/model/user"
)

func pendingJob(t *testing.T) *job.Job {
	t.Helper()
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), job.Details{
		LanguageID:   kernel.NewUUID(),
		Due:          time.Now().Add(48 * time.Hour),
		Duration:     60,
		JobType:      job.TypePaid,
		PhoneBooking: true,
	}, time.Now())
	require.NoError(t, err)
	return j
}

func customerUser(t *testing.T, id kernel.UUID) *user.User {
	t.Helper()
	u, err := user.NewUser(id, user.RoleCustomer, "Kund", "kund@example.com", "+46700000002", user.Meta{})
	require.NoError(t, err)
	return u
}

func TestAcceptJobCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := pendingJob(t)
	translatorID := kernel.NewUUID()
	customer := customerUser(t, aggregate.CustomerID())

	cmd, err := commands.NewAcceptJobCommand(aggregate.ID(), translatorID)
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
	mockJobRepo.On("IsTranslatorBookedAt", ctx, translatorID, mock.Anything, mock.Anything).Return(false, nil)
	mockJobRepo.On("UpdateWithExpectedStatus", ctx, aggregate, job.Pending).Return(true, nil)
	mockUserRepo.On("Get", ctx, aggregate.CustomerID()).Return(customer, nil)
	mockLanguages.On("NameByID", ctx, aggregate.LanguageID()).Return("franska", nil)
	mockNotifier.On("SendEmail", ctx, aggregate.ID(), mock.Anything).Return()

	handler := commands.NewAcceptJobCommandHandler(mockFactory, mockNotifier, mockLanguages)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Contains(t, result.Message, "Du har nu accepterat och fått bokningen för franskatolk 60min")
	assert.Equal(t, job.Assigned, aggregate.Status())
	require.NotNil(t, aggregate.CurrentAssignment())
	assert.Equal(t, translatorID, aggregate.CurrentAssignment().TranslatorID())
	mockJobRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestAcceptJobByIDCommandHandler_Handle_PushesAcceptingTranslator(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := pendingJob(t)
	translatorID := kernel.NewUUID()
	translator := translatorUser(t, translatorID)
	customer := customerUser(t, aggregate.CustomerID())

	cmd, err := commands.NewAcceptJobCommand(aggregate.ID(), translatorID)
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
	mockJobRepo.On("IsTranslatorBookedAt", ctx, translatorID, mock.Anything, mock.Anything).Return(false, nil)
	mockJobRepo.On("UpdateWithExpectedStatus", ctx, aggregate, job.Pending).Return(true, nil)
	mockUserRepo.On("Get", ctx, aggregate.CustomerID()).Return(customer, nil)
	mockUserRepo.On("Get", ctx, translatorID).Return(translator, nil)
	mockLanguages.On("NameByID", ctx, aggregate.LanguageID()).Return("spanska", nil)
	mockNotifier.On("SendEmail", ctx, aggregate.ID(), mock.Anything).Return()

	var pushedTo *user.User
	mockNotifier.On("NotifyUser", ctx, aggregate.ID(), mock.Anything, mock.Anything, mock.Anything, false).
		Run(func(args mock.Arguments) {
			pushedTo = args.Get(2).(*user.User)
		}).Return()

	handler := commands.NewAcceptJobByIDCommandHandler(mockFactory, mockNotifier, mockLanguages)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert: the direct acceptance push goes to the accepting translator,
	// not the customer.
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	require.NotNil(t, pushedTo)
	assert.Equal(t, translatorID, pushedTo.ID())
	mockNotifier.AssertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_LostRace(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := pendingJob(t)
	translatorID := kernel.NewUUID()

	cmd, err := commands.NewAcceptJobCommand(aggregate.ID(), translatorID)
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockNotifier := new(MockNotifier)
	mockLanguages := new(MockLanguageCatalog)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("JobRepository").Return(mockJobRepo)
	mockUoW.On("Rollback", ctx).Return(nil)
	mockJobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	mockJobRepo.On("IsTranslatorBookedAt", ctx, translatorID, mock.Anything, mock.Anything).Return(false, nil)
	// Another translator won between the read and the write.
	mockJobRepo.On("UpdateWithExpectedStatus", ctx, aggregate, job.Pending).Return(false, nil)
	mockLanguages.On("NameByID", ctx, aggregate.LanguageID()).Return("arabiska", nil)

	handler := commands.NewAcceptJobCommandHandler(mockFactory, mockNotifier, mockLanguages)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert: losers get the localized failure and no side effects run.
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
	assert.Equal(t, commands.CodeJobTaken, result.Code)
	assert.Contains(t, result.Message, "har redan accepterats av annan tolk")
	mockUoW.AssertNotCalled(t, "Commit", ctx)
	mockNotifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptJobCommandHandler_Handle_DoubleBooked(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := pendingJob(t)
	translatorID := kernel.NewUUID()

	cmd, err := commands.NewAcceptJobCommand(aggregate.ID(), translatorID)
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockNotifier := new(MockNotifier)
	mockLanguages := new(MockLanguageCatalog)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("JobRepository").Return(mockJobRepo)
	mockUoW.On("Rollback", ctx).Return(nil)
	mockJobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	mockJobRepo.On("IsTranslatorBookedAt", ctx, translatorID, mock.Anything, mock.Anything).Return(true, nil)
	mockLanguages.On("NameByID", ctx, aggregate.LanguageID()).Return("arabiska", nil)

	handler := commands.NewAcceptJobCommandHandler(mockFactory, mockNotifier, mockLanguages)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
	assert.Equal(t, commands.CodeDoubleBooked, result.Code)
	assert.Contains(t, result.Message, "Du har redan en bokning den tiden")
	assert.Equal(t, job.Pending, aggregate.Status(), "a rejected accept mutates nothing")
}

func TestNewAcceptJobCommand_Validation(t *testing.T) {
	_, err := commands.NewAcceptJobCommand(kernel.UUID{}, kernel.NewUUID())
	assert.Error(t, err)

	_, err = commands.NewAcceptJobCommand(kernel.NewUUID(), kernel.UUID{})
	assert.Error(t, err)

	var cmd commands.AcceptJobCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrAcceptJobCommandIsNotConstructed)
}
