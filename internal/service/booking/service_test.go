package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vaxtrack/booking-api/internal/email"
	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/payment"
	"github.com/vaxtrack/booking-api/internal/repository"
	"github.com/vaxtrack/booking-api/internal/service/notification"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
)

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) ListByHospital(ctx context.Context, hospitalID int64) ([]*model.InventoryRow, error) {
	args := m.Called(ctx, hospitalID)
	if rows := args.Get(0); rows != nil {
		return rows.([]*model.InventoryRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInventoryRepo) ListExpired(ctx context.Context, hospitalID int64, asOf time.Time) ([]*model.InventoryRow, error) {
	args := m.Called(ctx, hospitalID, asOf)
	if rows := args.Get(0); rows != nil {
		return rows.([]*model.InventoryRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInventoryRepo) GetPrice(ctx context.Context, vaccineID, hospitalID int64) (float64, error) {
	args := m.Called(ctx, vaccineID, hospitalID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockInventoryRepo) AddWithVaccine(ctx context.Context, vaccineName, vaccineType string, item *model.InventoryItem) error {
	args := m.Called(ctx, vaccineName, vaccineType, item)
	return args.Error(0)
}

func (m *mockInventoryRepo) OwnedBy(ctx context.Context, inventoryID, adminUserID int64) (bool, error) {
	args := m.Called(ctx, inventoryID, adminUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockInventoryRepo) UpdateStock(ctx context.Context, inventoryID int64, quantity int) error {
	args := m.Called(ctx, inventoryID, quantity)
	return args.Error(0)
}

func (m *mockInventoryRepo) Delete(ctx context.Context, inventoryID int64) error {
	args := m.Called(ctx, inventoryID)
	return args.Error(0)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Confirm(ctx context.Context, apt *model.Appointment) error {
	args := m.Called(ctx, apt)
	return args.Error(0)
}

func (m *mockAppointmentRepo) GetByCheckoutRef(ctx context.Context, ref string) (*model.Appointment, error) {
	args := m.Called(ctx, ref)
	if apt := args.Get(0); apt != nil {
		return apt.(*model.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) GetOwned(ctx context.Context, id, userID int64) (*model.Appointment, error) {
	args := m.Called(ctx, id, userID)
	if apt := args.Get(0); apt != nil {
		return apt.(*model.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	args := m.Called(ctx, id)
	if detail := args.Get(0); detail != nil {
		return detail.(*model.AppointmentDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) ListByUser(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error) {
	args := m.Called(ctx, userID)
	if details := args.Get(0); details != nil {
		return details.([]*model.AppointmentDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, apt *model.Appointment) error {
	args := m.Called(ctx, apt)
	return args.Error(0)
}

func (m *mockAppointmentRepo) Reschedule(ctx context.Context, id, userID int64, newDate time.Time) error {
	args := m.Called(ctx, id, userID, newDate)
	return args.Error(0)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if session := args.Get(0); session != nil {
		return session.(*payment.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error) {
	args := m.Called(ctx, userID)
	if notifications := args.Get(0); notifications != nil {
		return notifications.([]*model.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) MarkDelivered(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, phone, address, emergencyContact string) error {
	args := m.Called(ctx, id, phone, address, emergencyContact)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if users := args.Get(0); users != nil {
		return users.([]*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type testEnv struct {
	svc       *Service
	inventory *mockInventoryRepo
	apts      *mockAppointmentRepo
	provider  *mockProvider
	notifs    *mockNotificationRepo
	users     *mockUserRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		inventory: new(mockInventoryRepo),
		apts:      new(mockAppointmentRepo),
		provider:  new(mockProvider),
		notifs:    new(mockNotificationRepo),
		users:     new(mockUserRepo),
	}
	notifSvc := notification.NewService(env.notifs, env.users, email.NewNoopService())
	env.svc = NewService(env.inventory, env.apts, env.provider, notifSvc, "https://vax.example.com", "usd")
	env.svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return env
}

// expectNotify wires the side effects of a best-effort notification; the
// email relay is skipped because the user lookup fails.
func (env *testEnv) expectNotify(userID int64) {
	env.notifs.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		return n.UserID == userID && n.Status == model.NotificationStatusPending
	})).Return(nil)
	env.users.On("Get", mock.Anything, userID).Return(nil, repository.ErrNotFound)
}

func TestCheckoutCreatesSession(t *testing.T) {
	env := newTestEnv()
	env.inventory.On("GetPrice", mock.Anything, int64(3), int64(7)).Return(12.5, nil)
	env.provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p payment.CheckoutParams) bool {
		return p.AmountMinor == 1250 &&
			p.Currency == "usd" &&
			assert.Contains(t, p.SuccessURL, "session_id={CHECKOUT_SESSION_ID}") &&
			assert.Contains(t, p.SuccessURL, "vaccine_id=3") &&
			assert.Contains(t, p.CancelURL, "payment_failed=true")
	})).Return(&payment.CheckoutSession{ID: "cs_123", URL: "https://checkout.example.com/cs_123"}, nil)

	url, err := env.svc.Checkout(context.Background(), &model.CheckoutRequest{
		VaccineID:       3,
		HospitalID:      7,
		DoctorID:        2,
		AppointmentDate: "2026-03-15",
		AppointmentTime: "10:30",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/cs_123", url)
	env.provider.AssertExpectations(t)
}

func TestCheckoutRoundsFractionalPrice(t *testing.T) {
	env := newTestEnv()
	// 19.99 is not exactly representable; truncation would charge 1998.
	env.inventory.On("GetPrice", mock.Anything, int64(3), int64(7)).Return(19.99, nil)

	var gotAmount int64
	env.provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p payment.CheckoutParams) bool {
		gotAmount = p.AmountMinor
		return true
	})).Return(&payment.CheckoutSession{ID: "cs_124", URL: "https://checkout.example.com/cs_124"}, nil)

	_, err := env.svc.Checkout(context.Background(), &model.CheckoutRequest{
		VaccineID:       3,
		HospitalID:      7,
		DoctorID:        2,
		AppointmentDate: "2026-03-15",
		AppointmentTime: "10:30",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1999), gotAmount)
}

func TestCheckoutUnknownVaccine(t *testing.T) {
	env := newTestEnv()
	env.inventory.On("GetPrice", mock.Anything, int64(99), int64(7)).Return(0.0, repository.ErrNotFound)

	_, err := env.svc.Checkout(context.Background(), &model.CheckoutRequest{
		VaccineID:       99,
		HospitalID:      7,
		DoctorID:        2,
		AppointmentDate: "2026-03-15",
		AppointmentTime: "10:30",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	env.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestConfirmCreatesAppointment(t *testing.T) {
	env := newTestEnv()
	env.apts.On("GetByCheckoutRef", mock.Anything, "cs_123").Return(nil, repository.ErrNotFound)
	env.apts.On("Confirm", mock.Anything, mock.MatchedBy(func(apt *model.Appointment) bool {
		return apt.UserID == 42 &&
			apt.VaccineID == 3 &&
			apt.CheckoutRef != nil && *apt.CheckoutRef == "cs_123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Appointment).ID = 11
	}).Return(nil)
	env.expectNotify(42)

	apt, err := env.svc.Confirm(context.Background(), 42, ConfirmParams{
		CheckoutRef:     "cs_123",
		AppointmentDate: "2026-03-15",
		AppointmentTime: "10:30",
		DoctorID:        2,
		HospitalID:      7,
		VaccineID:       3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), apt.ID)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC), apt.AppointmentDate)
	env.apts.AssertExpectations(t)
	env.notifs.AssertExpectations(t)
}

func TestConfirmReplayedCallback(t *testing.T) {
	env := newTestEnv()
	existing := &model.Appointment{ID: 11, UserID: 42}
	env.apts.On("GetByCheckoutRef", mock.Anything, "cs_123").Return(existing, nil)

	apt, err := env.svc.Confirm(context.Background(), 42, ConfirmParams{
		CheckoutRef:     "cs_123",
		AppointmentDate: "2026-03-15",
		AppointmentTime: "10:30",
	})

	require.NoError(t, err)
	assert.Equal(t, existing, apt)
	env.apts.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	env.notifs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfirmOutOfStock(t *testing.T) {
	env := newTestEnv()
	env.apts.On("GetByCheckoutRef", mock.Anything, "cs_456").Return(nil, repository.ErrNotFound)
	env.apts.On("Confirm", mock.Anything, mock.Anything).Return(repository.ErrOutOfStock)

	_, err := env.svc.Confirm(context.Background(), 42, ConfirmParams{
		CheckoutRef:     "cs_456",
		AppointmentDate: "2026-03-15",
		AppointmentTime: "10:30",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindConflict, appErr.Kind)
}

func TestCancelRestocksAndNotifies(t *testing.T) {
	env := newTestEnv()
	apt := &model.Appointment{ID: 11, UserID: 42, VaccineID: 3, HospitalID: 7}
	env.apts.On("GetOwned", mock.Anything, int64(11), int64(42)).Return(apt, nil)
	env.apts.On("Cancel", mock.Anything, apt).Return(nil)
	env.expectNotify(42)

	err := env.svc.Cancel(context.Background(), 42, 11)

	require.NoError(t, err)
	env.apts.AssertExpectations(t)
	env.notifs.AssertExpectations(t)
}

func TestCancelTwiceReportsNotFound(t *testing.T) {
	env := newTestEnv()
	env.apts.On("GetOwned", mock.Anything, int64(11), int64(42)).Return(nil, repository.ErrNotFound)

	err := env.svc.Cancel(context.Background(), 42, 11)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	env.apts.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestCancelOtherUsersAppointment(t *testing.T) {
	env := newTestEnv()
	env.apts.On("GetOwned", mock.Anything, int64(11), int64(99)).Return(nil, repository.ErrNotFound)

	err := env.svc.Cancel(context.Background(), 99, 11)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestRescheduleRejectsPastDate(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Reschedule(context.Background(), 42, &model.RescheduleRequest{
		AppointmentID:      11,
		NewAppointmentDate: "2026-03-09",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	env.apts.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRescheduleSameDayAllowed(t *testing.T) {
	env := newTestEnv()
	wantDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	env.apts.On("Reschedule", mock.Anything, int64(11), int64(42), wantDate).Return(nil)

	err := env.svc.Reschedule(context.Background(), 42, &model.RescheduleRequest{
		AppointmentID:      11,
		NewAppointmentDate: "2026-03-10",
	})

	require.NoError(t, err)
	env.apts.AssertExpectations(t)
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	env := newTestEnv()
	env.apts.On("Reschedule", mock.Anything, int64(404), int64(42), mock.Anything).Return(repository.ErrNotFound)

	err := env.svc.Reschedule(context.Background(), 42, &model.RescheduleRequest{
		AppointmentID:      404,
		NewAppointmentDate: "2026-04-01",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}
