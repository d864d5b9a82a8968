package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
)

// Dashboard is the hospital-admin landing payload: the admin's hospital
// plus its current stock.
type Dashboard struct {
	Hospital  *model.Hospital       `json:"hospital"`
	Inventory []*model.InventoryRow `json:"inventory"`
}

type Service struct {
	hospitalRepo  repository.HospitalRepository
	inventoryRepo repository.InventoryRepository
	now           func() time.Time
}

func NewService(hospitalRepo repository.HospitalRepository, inventoryRepo repository.InventoryRepository) *Service {
	return &Service{
		hospitalRepo:  hospitalRepo,
		inventoryRepo: inventoryRepo,
		now:           time.Now,
	}
}

// hospitalFor resolves the hospital administered by the caller. A user
// without a hospital assignment cannot touch inventory at all.
func (s *Service) hospitalFor(ctx context.Context, adminUserID int64) (*model.Hospital, error) {
	hospital, err := s.hospitalRepo.GetByAdminID(ctx, adminUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("no hospital assigned to this account", err)
		}
		return nil, fmt.Errorf("failed to resolve hospital: %w", err)
	}
	return hospital, nil
}

func (s *Service) Dashboard(ctx context.Context, adminUserID int64) (*Dashboard, error) {
	hospital, err := s.hospitalFor(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	rows, err := s.inventoryRepo.ListByHospital(ctx, hospital.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return &Dashboard{Hospital: hospital, Inventory: rows}, nil
}

func (s *Service) View(ctx context.Context, adminUserID int64) ([]*model.InventoryRow, error) {
	hospital, err := s.hospitalFor(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	rows, err := s.inventoryRepo.ListByHospital(ctx, hospital.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return rows, nil
}

// Add creates an inventory row for the admin's hospital. The vaccine is
// matched by exact name and created on the fly when the catalog does
// not have it yet.
func (s *Service) Add(ctx context.Context, adminUserID int64, req *model.AddInventoryRequest, imageURL string) error {
	hospital, err := s.hospitalFor(ctx, adminUserID)
	if err != nil {
		return err
	}

	item := &model.InventoryItem{
		HospitalID:    hospital.ID,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return apperrors.BadRequest("invalid expiry date", err)
		}
		item.ExpiryDate = &expiry
	}
	if req.Notes != "" {
		item.Notes = &req.Notes
	}
	if imageURL != "" {
		item.ImageURL = &imageURL
	}

	if err := s.inventoryRepo.AddWithVaccine(ctx, req.VaccineName, req.VaccineType, item); err != nil {
		return fmt.Errorf("failed to add inventory: %w", err)
	}
	return nil
}

// UpdateStock sets the absolute stock quantity on an inventory row the
// caller's hospital owns.
func (s *Service) UpdateStock(ctx context.Context, adminUserID int64, req *model.UpdateInventoryRequest) error {
	if err := s.requireOwned(ctx, req.InventoryID, adminUserID); err != nil {
		return err
	}
	if err := s.inventoryRepo.UpdateStock(ctx, req.InventoryID, req.Quantity); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, adminUserID, inventoryID int64) error {
	if err := s.requireOwned(ctx, inventoryID, adminUserID); err != nil {
		return err
	}
	if err := s.inventoryRepo.Delete(ctx, inventoryID); err != nil {
		return fmt.Errorf("failed to remove inventory: %w", err)
	}
	return nil
}

// Expired lists the admin hospital's rows whose expiry date has passed.
func (s *Service) Expired(ctx context.Context, adminUserID int64) ([]*model.InventoryRow, error) {
	hospital, err := s.hospitalFor(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	rows, err := s.inventoryRepo.ListExpired(ctx, hospital.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list expired inventory: %w", err)
	}
	return rows, nil
}

func (s *Service) requireOwned(ctx context.Context, inventoryID, adminUserID int64) error {
	owned, err := s.inventoryRepo.OwnedBy(ctx, inventoryID, adminUserID)
	if err != nil {
		return fmt.Errorf("failed to check inventory ownership: %w", err)
	}
	if !owned {
		return apperrors.Forbidden("inventory item does not belong to your hospital", nil)
	}
	return nil
}
