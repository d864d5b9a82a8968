package admin

import (
	"context"
	"fmt"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
)

// Dashboard is the site-admin console payload: everything the console
// lists and manages.
type Dashboard struct {
	Users     []*model.User        `json:"users"`
	Hospitals []*model.Hospital    `json:"hospitals"`
	Vaccines  []*model.VaccineInfo `json:"vaccines"`
}

type Service struct {
	userRepo     repository.UserRepository
	hospitalRepo repository.HospitalRepository
	vaccineRepo  repository.VaccineRepository
}

func NewService(
	userRepo repository.UserRepository,
	hospitalRepo repository.HospitalRepository,
	vaccineRepo repository.VaccineRepository,
) *Service {
	return &Service{
		userRepo:     userRepo,
		hospitalRepo: hospitalRepo,
		vaccineRepo:  vaccineRepo,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	hospitals, err := s.hospitalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	vaccines, err := s.vaccineRepo.ListWithInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccines: %w", err)
	}
	return &Dashboard{Users: users, Hospitals: hospitals, Vaccines: vaccines}, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *Service) DeleteHospital(ctx context.Context, id int64) error {
	if err := s.hospitalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}
	return nil
}

func (s *Service) DeleteVaccine(ctx context.Context, id int64) error {
	if err := s.vaccineRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vaccine: %w", err)
	}
	return nil
}
