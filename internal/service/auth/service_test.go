package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
	"github.com/vaxtrack/booking-api/internal/session"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/security"
)

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

type mockHospitalRepo struct{ mock.Mock }

func (m *mockHospitalRepo) List(ctx context.Context) ([]*model.Hospital, error) {
	args := m.Called(ctx)
	if hospitals := args.Get(0); hospitals != nil {
		return hospitals.([]*model.Hospital), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHospitalRepo) Get(ctx context.Context, id int64) (*model.Hospital, error) {
	args := m.Called(ctx, id)
	if hospital := args.Get(0); hospital != nil {
		return hospital.(*model.Hospital), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHospitalRepo) GetByAdminID(ctx context.Context, adminUserID int64) (*model.Hospital, error) {
	args := m.Called(ctx, adminUserID)
	if hospital := args.Get(0); hospital != nil {
		return hospital.(*model.Hospital), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHospitalRepo) AssignAdmin(ctx context.Context, hospitalID, adminUserID int64) error {
	args := m.Called(ctx, hospitalID, adminUserID)
	return args.Error(0)
}

func (m *mockHospitalRepo) ListByVaccine(ctx context.Context, vaccineID int64, city string) ([]*model.Hospital, error) {
	args := m.Called(ctx, vaccineID, city)
	if hospitals := args.Get(0); hospitals != nil {
		return hospitals.([]*model.Hospital), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHospitalRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService() (*Service, *mockUserRepo, *mockHospitalRepo) {
	users := new(mockUserRepo)
	hospitals := new(mockHospitalRepo)
	svc := NewService(
		users,
		hospitals,
		security.NewBcryptHasher(bcrypt.MinCost),
		session.NewMemoryStore(time.Minute),
		session.NewTokenCodec("test-secret-test-secret-test-sec"),
		time.Hour,
	)
	return svc, users, hospitals
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := newTestService()
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "ada" &&
			u.Role == model.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != "hunter2hunter2"
	})).Return(nil)

	err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "ada",
		Password: "hunter2hunter2",
		Email:    "ada@example.com",
		Role:     model.RoleUser,
	})

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _ := newTestService()
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(&model.User{ID: 1}, nil)

	err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "ada",
		Password: "hunter2hunter2",
		Email:    "ada@example.com",
		Role:     model.RoleUser,
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindConflict, appErr.Kind)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterHospitalAdminClaimsHospital(t *testing.T) {
	svc, users, hospitals := newTestService()
	hospitalID := int64(7)
	users.On("GetByEmail", mock.Anything, "hadmin@example.com").Return(nil, repository.ErrNotFound)
	hospitals.On("Get", mock.Anything, int64(7)).Return(&model.Hospital{ID: 7}, nil)
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 5
	}).Return(nil)
	hospitals.On("AssignAdmin", mock.Anything, int64(7), int64(5)).Return(nil)

	err := svc.Register(context.Background(), &model.RegisterRequest{
		Username:   "hadmin",
		Password:   "hunter2hunter2",
		Email:      "hadmin@example.com",
		Role:       model.RoleHospitalAdmin,
		HospitalID: &hospitalID,
	})

	require.NoError(t, err)
	hospitals.AssertExpectations(t)
}

func TestRegisterHospitalAdminUnknownHospital(t *testing.T) {
	svc, users, hospitals := newTestService()
	hospitalID := int64(99)
	users.On("GetByEmail", mock.Anything, "hadmin@example.com").Return(nil, repository.ErrNotFound)
	hospitals.On("Get", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	err := svc.Register(context.Background(), &model.RegisterRequest{
		Username:   "hadmin",
		Password:   "hunter2hunter2",
		Email:      "hadmin@example.com",
		Role:       model.RoleHospitalAdmin,
		HospitalID: &hospitalID,
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, users, _ := newTestService()

	err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "mallory",
		Password: "hunter2hunter2",
		Email:    "mallory@example.com",
		Role:     model.RoleSiteAdmin,
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, users, _ := newTestService()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("hunter2hunter2")
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "ada").Return(&model.User{
		ID:           1,
		Username:     "ada",
		PasswordHash: hash,
		Role:         model.RoleUser,
	}, nil)

	resp, err := svc.Login(context.Background(), "ada", "hunter2hunter2")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleUser, resp.Role)
	assert.Equal(t, "/vaccines", resp.Redirect)

	codec := session.NewTokenCodec("test-secret-test-secret-test-sec")
	sid, err := codec.Parse(resp.Token)
	require.NoError(t, err)

	sess, err := svc.sessions.Get(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sess.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _ := newTestService()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("hunter2hunter2")
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "ada").Return(&model.User{
		ID:           1,
		PasswordHash: hash,
	}, nil)

	_, err = svc.Login(context.Background(), "ada", "wrong-password")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindUnauthorized, appErr.Kind)
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	svc, users, _ := newTestService()
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := svc.Login(context.Background(), "ghost", "whatever-pass")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindUnauthorized, appErr.Kind)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestLoginHospitalAdminCarriesHospital(t *testing.T) {
	svc, users, hospitals := newTestService()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("hunter2hunter2")
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "hadmin").Return(&model.User{
		ID:           5,
		Username:     "hadmin",
		PasswordHash: hash,
		Role:         model.RoleHospitalAdmin,
	}, nil)
	hospitals.On("GetByAdminID", mock.Anything, int64(5)).Return(&model.Hospital{ID: 7}, nil)

	resp, err := svc.Login(context.Background(), "hadmin", "hunter2hunter2")

	require.NoError(t, err)
	assert.Equal(t, "/admin-dashboard", resp.Redirect)

	codec := session.NewTokenCodec("test-secret-test-secret-test-sec")
	sid, err := codec.Parse(resp.Token)
	require.NoError(t, err)
	sess, err := svc.sessions.Get(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, sess.HospitalID)
	assert.Equal(t, int64(7), *sess.HospitalID)
}

func TestLogoutDeletesSession(t *testing.T) {
	svc, users, _ := newTestService()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("hunter2hunter2")
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "ada").Return(&model.User{
		ID:           1,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}, nil)

	resp, err := svc.Login(context.Background(), "ada", "hunter2hunter2")
	require.NoError(t, err)

	codec := session.NewTokenCodec("test-secret-test-secret-test-sec")
	sid, err := codec.Parse(resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sid))

	_, err = svc.sessions.Get(context.Background(), sid)
	assert.Error(t, err)
}
