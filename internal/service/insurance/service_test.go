package insurance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
)

type mockInsuranceRepo struct{ mock.Mock }

func (m *mockInsuranceRepo) Create(ctx context.Context, detail *model.InsuranceDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *mockInsuranceRepo) ListByUser(ctx context.Context, userID int64) ([]*model.InsuranceDetail, error) {
	args := m.Called(ctx, userID)
	if details := args.Get(0); details != nil {
		return details.([]*model.InsuranceDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInsuranceRepo) GetOwned(ctx context.Context, id, userID int64) (*model.InsuranceDetail, error) {
	args := m.Called(ctx, id, userID)
	if detail := args.Get(0); detail != nil {
		return detail.(*model.InsuranceDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInsuranceRepo) UpdateOwned(ctx context.Context, detail *model.InsuranceDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *mockInsuranceRepo) DeleteOwned(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func TestAddParsesExpiry(t *testing.T) {
	repo := new(mockInsuranceRepo)
	svc := NewService(repo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *model.InsuranceDetail) bool {
		return d.UserID == 42 &&
			d.Provider == "Acme Health" &&
			d.ExpiryDate != nil &&
			d.ExpiryDate.Equal(time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	created, err := svc.Add(context.Background(), 42, &model.InsuranceRequest{
		Provider:     "Acme Health",
		PolicyNumber: "POL-1234",
		ExpiryDate:   "2027-06-30",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.UserID)
	repo.AssertExpectations(t)
}

func TestAddRejectsBadExpiry(t *testing.T) {
	repo := new(mockInsuranceRepo)
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), 42, &model.InsuranceRequest{
		Provider:     "Acme Health",
		PolicyNumber: "POL-1234",
		ExpiryDate:   "30-06-2027",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetForeignRecordIsNotFound(t *testing.T) {
	repo := new(mockInsuranceRepo)
	svc := NewService(repo)
	repo.On("GetOwned", mock.Anything, int64(3), int64(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(context.Background(), 99, 3)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestUpdateKeepsOwnerScope(t *testing.T) {
	repo := new(mockInsuranceRepo)
	svc := NewService(repo)
	repo.On("UpdateOwned", mock.Anything, mock.MatchedBy(func(d *model.InsuranceDetail) bool {
		return d.ID == 3 && d.UserID == 42 && d.PolicyNumber == "POL-9999"
	})).Return(nil)

	err := svc.Update(context.Background(), 42, 3, &model.InsuranceRequest{
		Provider:     "Acme Health",
		PolicyNumber: "POL-9999",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteForeignRecordIsNotFound(t *testing.T) {
	repo := new(mockInsuranceRepo)
	svc := NewService(repo)
	repo.On("DeleteOwned", mock.Anything, int64(3), int64(99)).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), 99, 3)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}
