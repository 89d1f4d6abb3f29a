package notifications_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tolkbook/internal/core/application/notifications"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/ports"
)

// Mock implementations for testing.
type MockPushSender struct {
	mock.Mock
	mu   sync.Mutex
	sent []ports.PushMessage
}

func (m *MockPushSender) Send(ctx context.Context, msg ports.PushMessage) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockPushSender) Sent() []ports.PushMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.PushMessage(nil), m.sent...)
}

type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, from, to, text string) error {
	args := m.Called(ctx, from, to, text)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, email ports.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

var daytime = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newDispatcher(t *testing.T, push ports.PushSender, sms ports.SMSSender, mailer ports.Mailer) *notifications.Dispatcher {
	t.Helper()
	d, err := notifications.NewDispatcher(
		push, sms, mailer,
		kernel.DefaultBusinessHours(),
		"+46700000000",
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)
	return d
}

func makeJob(t *testing.T, mutate func(d *job.Details)) *job.Job {
	t.Helper()
	d := job.Details{
		LanguageID:   kernel.NewUUID(),
		Due:          daytime.Add(48 * time.Hour),
		Duration:     90,
		JobType:      job.TypePaid,
		PhoneBooking: true,
	}
	if mutate != nil {
		mutate(&d)
	}
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), d, daytime)
	require.NoError(t, err)
	return j
}

func makeTranslator(t *testing.T, meta user.Meta) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.RoleTranslator, "Tolk", "tolk@example.com", "+46700000001", meta)
	require.NoError(t, err)
	return u
}

func Test_BroadcastNewJob_SkipsOptedOut(t *testing.T) {
	// Arrange
	push := new(MockPushSender)
	push.On("Send", mock.Anything, mock.Anything).Return(nil)
	d := newDispatcher(t, push, new(MockSMSSender), new(MockMailer))
	j := makeJob(t, nil)

	recipient := makeTranslator(t, user.Meta{})
	optedOut := makeTranslator(t, user.Meta{OptOutAll: true})

	// Act
	d.BroadcastNewJob(t.Context(), j, "franska", []*user.User{recipient, optedOut})

	// Assert
	sent := push.Sent()
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Recipients, 1)
	assert.Equal(t, recipient.ID(), sent[0].Recipients[0].UserID)
	assert.Nil(t, sent[0].DeliverAfter)
	assert.Contains(t, sent[0].Contents["en"], "Ny bokning för franskatolk 90min")
}

func Test_BroadcastNewJob_EmergencyOptOut(t *testing.T) {
	// Arrange
	push := new(MockPushSender)
	push.On("Send", mock.Anything, mock.Anything).Return(nil).Maybe()
	d := newDispatcher(t, push, new(MockSMSSender), new(MockMailer))

	noEmergency := makeTranslator(t, user.Meta{OptOutEmergency: true})

	// Act: the emergency opt-out only matters for immediate bookings.
	d.BroadcastNewJob(t.Context(), makeJob(t, func(det *job.Details) { det.Immediate = true }), "arabiska", []*user.User{noEmergency})
	assert.Empty(t, push.Sent())

	d.BroadcastNewJob(t.Context(), makeJob(t, nil), "arabiska", []*user.User{noEmergency})
	assert.Len(t, push.Sent(), 1)
}

func Test_BroadcastNewJob_ImmediateText(t *testing.T) {
	// Arrange
	push := new(MockPushSender)
	push.On("Send", mock.Anything, mock.Anything).Return(nil)
	d := newDispatcher(t, push, new(MockSMSSender), new(MockMailer))
	recipient := makeTranslator(t, user.Meta{})

	// Act
	d.BroadcastNewJob(t.Context(), makeJob(t, func(det *job.Details) { det.Immediate = true }), "spanska", []*user.User{recipient})

	// Assert
	sent := push.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Contents["en"], "Ny akutbokning för spanskatolk")
	assert.True(t, sent[0].Urgent)
}

func Test_BroadcastNewJob_PushFailureIsSwallowed(t *testing.T) {
	// Arrange
	push := new(MockPushSender)
	push.On("Send", mock.Anything, mock.Anything).Return(errors.New("provider down"))
	d := newDispatcher(t, push, new(MockSMSSender), new(MockMailer))
	recipient := makeTranslator(t, user.Meta{})

	// Act: no panic, no error surfaces.
	d.BroadcastNewJob(t.Context(), makeJob(t, nil), "tyska", []*user.User{recipient})

	push.AssertExpectations(t)
}

func Test_SendSMS_CountsDeliveries(t *testing.T) {
	// Arrange
	sms := new(MockSMSSender)
	d := newDispatcher(t, new(MockPushSender), sms, new(MockMailer))
	j := makeJob(t, nil)

	ok := makeTranslator(t, user.Meta{})
	failing := makeTranslator(t, user.Meta{})

	sms.On("Send", mock.Anything, "+46700000000", ok.Phone(), mock.Anything).Return(nil).Once()
	sms.On("Send", mock.Anything, "+46700000000", failing.Phone(), mock.Anything).Return(errors.New("gateway timeout")).Once()

	// Act
	count := d.SendSMS(t.Context(), j, "Stockholm", []*user.User{ok, failing})

	// Assert: failures reduce the count but abort nothing.
	assert.Equal(t, 1, count)
	sms.AssertExpectations(t)
}

func Test_SendSMS_TemplateSelection(t *testing.T) {
	// Arrange
	sms := new(MockSMSSender)
	var got string
	sms.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.String(3) }).
		Return(nil)
	d := newDispatcher(t, new(MockPushSender), sms, new(MockMailer))
	tr := makeTranslator(t, user.Meta{})

	// Physical-only bookings use the on-site template.
	physical := makeJob(t, func(det *job.Details) {
		det.PhoneBooking = false
		det.PhysicalBooking = true
	})
	d.SendSMS(t.Context(), physical, "Uppsala", []*user.User{tr})
	assert.Contains(t, got, "platstolkuppdrag i Uppsala")

	// Both options default to the phone template.
	both := makeJob(t, func(det *job.Details) { det.PhysicalBooking = true })
	d.SendSMS(t.Context(), both, "Uppsala", []*user.User{tr})
	assert.Contains(t, got, "telefontolkuppdrag")
}

func Test_SendEmail_FailureIsSwallowed(t *testing.T) {
	// Arrange
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp refused"))
	d := newDispatcher(t, new(MockPushSender), new(MockSMSSender), mailer)

	// Act
	d.SendEmail(t.Context(), kernel.NewUUID(), ports.Email{To: "kund@example.com", Subject: "x"})

	mailer.AssertExpectations(t)
}

func Test_SendEmail_SkipsEmptyRecipient(t *testing.T) {
	mailer := new(MockMailer)
	d := newDispatcher(t, new(MockPushSender), new(MockSMSSender), mailer)

	d.SendEmail(t.Context(), kernel.NewUUID(), ports.Email{})

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func Test_NotifyUser_OptOutAll(t *testing.T) {
	push := new(MockPushSender)
	d := newDispatcher(t, push, new(MockSMSSender), new(MockMailer))
	optedOut := makeTranslator(t, user.Meta{OptOutAll: true})

	d.NotifyUser(t.Context(), kernel.NewUUID(), optedOut, "text", notifications.JobCancelled{}, false)

	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func Test_ConvertToHoursMins(t *testing.T) {
	assert.Equal(t, "30min", notifications.ConvertToHoursMins(30))
	assert.Equal(t, "1h", notifications.ConvertToHoursMins(60))
	assert.Equal(t, "02h 30min", notifications.ConvertToHoursMins(150))
}
