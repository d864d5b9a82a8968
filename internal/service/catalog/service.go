package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
)

type Service struct {
	vaccineRepo   repository.VaccineRepository
	hospitalRepo  repository.HospitalRepository
	doctorRepo    repository.DoctorRepository
	inventoryRepo repository.InventoryRepository
}

func NewService(
	vaccineRepo repository.VaccineRepository,
	hospitalRepo repository.HospitalRepository,
	doctorRepo repository.DoctorRepository,
	inventoryRepo repository.InventoryRepository,
) *Service {
	return &Service{
		vaccineRepo:   vaccineRepo,
		hospitalRepo:  hospitalRepo,
		doctorRepo:    doctorRepo,
		inventoryRepo: inventoryRepo,
	}
}

// ListVaccines applies the optional search and category filters. An
// empty result is a success, not an error.
func (s *Service) ListVaccines(ctx context.Context, filter model.VaccineFilter) ([]*model.Vaccine, error) {
	vaccines, err := s.vaccineRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccines: %w", err)
	}
	return vaccines, nil
}

// HospitalsForVaccine lists hospitals stocking the vaccine, optionally
// narrowed by a case-insensitive substring match on the location.
func (s *Service) HospitalsForVaccine(ctx context.Context, vaccineID int64, city string) ([]*model.Hospital, error) {
	hospitals, err := s.hospitalRepo.ListByVaccine(ctx, vaccineID, strings.ToLower(city))
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (s *Service) ListHospitals(ctx context.Context) ([]*model.Hospital, error) {
	hospitals, err := s.hospitalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (s *Service) DoctorsForHospital(ctx context.Context, hospitalID int64) ([]*model.Doctor, error) {
	doctors, err := s.doctorRepo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// HospitalInventory is the patient-facing priced stock view. A hospital
// stocking nothing reports not-found.
func (s *Service) HospitalInventory(ctx context.Context, hospitalID int64) ([]*model.InventoryRow, error) {
	rows, err := s.inventoryRepo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("vaccines for this hospital", nil)
	}
	return rows, nil
}

func (s *Service) VaccineInformation(ctx context.Context) ([]*model.VaccineInfo, error) {
	infos, err := s.vaccineRepo.ListWithInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccine information: %w", err)
	}
	return infos, nil
}
