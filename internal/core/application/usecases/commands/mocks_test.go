package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tolkbook/internal/core/application/usecases/commands"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
)

// Mock implementations shared by the handler tests.

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateWithExpectedStatus(ctx context.Context, aggregate *job.Job, expected job.Status) (bool, error) {
	args := m.Called(ctx, aggregate, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetAllPending(ctx context.Context) ([]*job.Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetExpiredPending(ctx context.Context, before time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetOpenAssignmentRanges(ctx context.Context) (map[string][]services.TimeRange, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string][]services.TimeRange), args.Error(1)
}

func (m *MockJobRepository) IsTranslatorBookedAt(ctx context.Context, translatorID kernel.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, translatorID, start, end)
	return args.Bool(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetAllActiveTranslators(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockJobUoWFactory struct {
	mock.Mock
}

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BroadcastNewJob(ctx context.Context, j *job.Job, language string, eligible []*user.User) {
	m.Called(ctx, j, language, eligible)
}

func (m *MockNotifier) NotifyUser(ctx context.Context, jobID kernel.UUID, recipient *user.User, text string, payload ports.NotificationPayload, urgent bool) {
	m.Called(ctx, jobID, recipient, text, payload, urgent)
}

func (m *MockNotifier) SendSMS(ctx context.Context, j *job.Job, town string, translators []*user.User) int {
	args := m.Called(ctx, j, town, translators)
	return args.Int(0)
}

func (m *MockNotifier) SendEmail(ctx context.Context, jobID kernel.UUID, email ports.Email) {
	m.Called(ctx, jobID, email)
}

type MockLanguageCatalog struct {
	mock.Mock
}

func (m *MockLanguageCatalog) NameByID(ctx context.Context, id kernel.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishJobCreated(ctx context.Context, event ports.JobCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishJobCanceled(ctx context.Context, event ports.JobCanceledEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishSessionEnded(ctx context.Context, event ports.SessionEndedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
