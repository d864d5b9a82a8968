package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/service/catalog"
)

type stubInventoryRepo struct{ mock.Mock }

func (m *stubInventoryRepo) ListByHospital(ctx context.Context, hospitalID int64) ([]*model.InventoryRow, error) {
	args := m.Called(ctx, hospitalID)
	if rows := args.Get(0); rows != nil {
		return rows.([]*model.InventoryRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubInventoryRepo) ListExpired(ctx context.Context, hospitalID int64, asOf time.Time) ([]*model.InventoryRow, error) {
	args := m.Called(ctx, hospitalID, asOf)
	return nil, args.Error(1)
}

func (m *stubInventoryRepo) GetPrice(ctx context.Context, vaccineID, hospitalID int64) (float64, error) {
	args := m.Called(ctx, vaccineID, hospitalID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *stubInventoryRepo) AddWithVaccine(ctx context.Context, vaccineName, vaccineType string, item *model.InventoryItem) error {
	args := m.Called(ctx, vaccineName, vaccineType, item)
	return args.Error(0)
}

func (m *stubInventoryRepo) OwnedBy(ctx context.Context, inventoryID, adminUserID int64) (bool, error) {
	args := m.Called(ctx, inventoryID, adminUserID)
	return args.Bool(0), args.Error(1)
}

func (m *stubInventoryRepo) UpdateStock(ctx context.Context, inventoryID int64, quantity int) error {
	args := m.Called(ctx, inventoryID, quantity)
	return args.Error(0)
}

func (m *stubInventoryRepo) Delete(ctx context.Context, inventoryID int64) error {
	args := m.Called(ctx, inventoryID)
	return args.Error(0)
}

func newInventoryRouter(t *testing.T) (*gin.Engine, *stubInventoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	inventory := new(stubInventoryRepo)
	h := NewHandler(catalog.NewService(nil, nil, nil, inventory))

	r := gin.New()
	r.GET("/hospitals/:id/doctors/:doctorId", h.HospitalInventory)
	return r, inventory
}

func TestHospitalInventoryRejectsBadDoctorID(t *testing.T) {
	r, inventory := newInventoryRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hospitals/7/doctors/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	inventory.AssertNotCalled(t, "ListByHospital", mock.Anything, mock.Anything)
}

func TestHospitalInventoryRejectsBadHospitalID(t *testing.T) {
	r, inventory := newInventoryRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hospitals/0/doctors/2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	inventory.AssertNotCalled(t, "ListByHospital", mock.Anything, mock.Anything)
}

func TestHospitalInventoryListsPricedStock(t *testing.T) {
	r, inventory := newInventoryRouter(t)
	rows := []*model.InventoryRow{
		{InventoryItem: model.InventoryItem{ID: 1, HospitalID: 7, VaccineID: 3, Price: 19.99}, VaccineName: "Typhoid"},
	}
	inventory.On("ListByHospital", mock.Anything, int64(7)).Return(rows, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hospitals/7/doctors/2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"vaccine_name":"Typhoid"`)
	inventory.AssertExpectations(t)
}
