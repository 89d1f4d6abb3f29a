package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpin "tolkbook/internal/adapters/in/http"
	"tolkbook/internal/core/application/usecases/commands"
	"tolkbook/internal/core/application/usecases/queries"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
	"tolkbook/internal/pkg/errs"
)

// In-memory stubs backing the full handler chain. The server test goes
// through real command and query handlers; only persistence and the
// notification channels are faked.

type stubJobRepository struct {
	byID map[string]*job.Job
}

func (s *stubJobRepository) Add(_ context.Context, aggregate *job.Job) error {
	s.byID[aggregate.ID().String()] = aggregate
	return nil
}

func (s *stubJobRepository) Update(context.Context, *job.Job) error { return nil }

func (s *stubJobRepository) UpdateWithExpectedStatus(context.Context, *job.Job, job.Status) (bool, error) {
	return true, nil
}

func (s *stubJobRepository) Get(_ context.Context, id kernel.UUID) (*job.Job, error) {
	aggregate, ok := s.byID[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("job", id.String())
	}
	return aggregate, nil
}

func (s *stubJobRepository) GetAllPending(context.Context) ([]*job.Job, error) {
	pending := make([]*job.Job, 0)
	for _, aggregate := range s.byID {
		if aggregate.Status() == job.Pending {
			pending = append(pending, aggregate)
		}
	}
	return pending, nil
}

func (s *stubJobRepository) GetExpiredPending(context.Context, time.Time) ([]*job.Job, error) {
	return nil, nil
}

func (s *stubJobRepository) GetOpenAssignmentRanges(context.Context) (map[string][]services.TimeRange, error) {
	return map[string][]services.TimeRange{}, nil
}

func (s *stubJobRepository) IsTranslatorBookedAt(context.Context, kernel.UUID, time.Time, time.Time) (bool, error) {
	return false, nil
}

type stubUserRepository struct {
	byID map[string]*user.User
}

func (s *stubUserRepository) Add(context.Context, *user.User) error    { return nil }
func (s *stubUserRepository) Update(context.Context, *user.User) error { return nil }

func (s *stubUserRepository) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	u, ok := s.byID[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id.String())
	}
	return u, nil
}

func (s *stubUserRepository) GetAllActiveTranslators(context.Context) ([]*user.User, error) {
	translators := make([]*user.User, 0)
	for _, u := range s.byID {
		if u.IsTranslator() && u.Active() {
			translators = append(translators, u)
		}
	}
	return translators, nil
}

type stubUoW struct {
	jobs  ports.JobRepository
	users ports.UserRepository
}

func (s *stubUoW) Begin(context.Context) error          { return nil }
func (s *stubUoW) Commit(context.Context) error         { return nil }
func (s *stubUoW) Rollback(context.Context) error       { return nil }
func (s *stubUoW) JobRepository() ports.JobRepository   { return s.jobs }
func (s *stubUoW) UserRepository() ports.UserRepository { return s.users }

type stubUoWFactory struct{ uow *stubUoW }

func (s stubUoWFactory) Create() commands.UoW { return s.uow }

type stubNotifier struct{}

func (stubNotifier) BroadcastNewJob(context.Context, *job.Job, string, []*user.User) {}
func (stubNotifier) NotifyUser(context.Context, kernel.UUID, *user.User, string, ports.NotificationPayload, bool) {
}
func (stubNotifier) SendSMS(context.Context, *job.Job, string, []*user.User) int { return 0 }
func (stubNotifier) SendEmail(context.Context, kernel.UUID, ports.Email)         {}

type stubLanguageCatalog struct{ name string }

func (s stubLanguageCatalog) NameByID(context.Context, kernel.UUID) (string, error) {
	return s.name, nil
}

func newPendingJob(t *testing.T, customerID, languageID kernel.UUID, due time.Time) *job.Job {
	t.Helper()
	aggregate, err := job.NewJob(kernel.NewUUID(), customerID, job.Details{
		LanguageID:   languageID,
		Due:          due,
		Duration:     60,
		JobType:      job.TypePaid,
		PhoneBooking: true,
	}, time.Now())
	require.NoError(t, err)
	return aggregate
}

func TestServer_AcceptJob_ReturnsRefreshedPotentialJobs(t *testing.T) {
	// Arrange: two pending bookings in the same language; accepting the
	// first must leave exactly the second in the returned feed.
	languageID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	customer, err := user.NewUser(customerID, user.RoleCustomer, "Kund", "kund@example.com", "+46700000002", user.Meta{})
	require.NoError(t, err)

	translatorID := kernel.NewUUID()
	translator, err := user.NewUser(translatorID, user.RoleTranslator, "Tolk", "tolk@example.com", "+46700000003", user.Meta{
		TranslatorType: user.TranslatorTypeProfessional,
	})
	require.NoError(t, err)
	translator.SetLanguages([]kernel.UUID{languageID})

	accepted := newPendingJob(t, customerID, languageID, time.Now().Add(48*time.Hour))
	remaining := newPendingJob(t, customerID, languageID, time.Now().Add(72*time.Hour))

	jobs := &stubJobRepository{byID: map[string]*job.Job{
		accepted.ID().String():  accepted,
		remaining.ID().String(): remaining,
	}}
	users := &stubUserRepository{byID: map[string]*user.User{
		customerID.String():   customer,
		translatorID.String(): translator,
	}}
	factory := stubUoWFactory{uow: &stubUoW{jobs: jobs, users: users}}
	notifier := stubNotifier{}
	languages := stubLanguageCatalog{name: "franska"}
	matcher := services.NewEligibilityMatcher()

	server := httpin.NewServer(
		commands.CreateJobCommandHandler{},
		commands.UpdateJobCommandHandler{},
		commands.NewAcceptJobCommandHandler(factory, notifier, languages),
		commands.NewAcceptJobByIDCommandHandler(factory, notifier, languages),
		commands.CancelJobCommandHandler{},
		commands.StartJobCommandHandler{},
		commands.EndJobCommandHandler{},
		commands.CustomerNotCallCommandHandler{},
		commands.ReopenJobCommandHandler{},
		commands.ResendNotificationCommandHandler{},
		commands.ResendNotificationCommandHandler{},
		commands.SetJobContactCommandHandler{},
		queries.NewGetPotentialJobsQueryHandler(jobs, users, languages, matcher),
		queries.ListJobsQueryHandler{},
	)
	e := echo.New()
	server.RegisterRoutes(e)

	body := `{"job_id":"` + accepted.ID().String() + `","translator_id":"` + translatorID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/accept", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	// Act
	e.ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var response httpin.AcceptJobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "success", response.Status)
	require.Len(t, response.PotentialJobs, 1)
	assert.Equal(t, remaining.ID().String(), response.PotentialJobs[0].ID)
	assert.Equal(t, "franska", response.PotentialJobs[0].Language)
}
