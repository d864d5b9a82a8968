package insurance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
)

// Service manages a user's insurance records. Every read and write is
// scoped to the owning user; ids from other accounts behave as missing.
type Service struct {
	insuranceRepo repository.InsuranceRepository
}

func NewService(insuranceRepo repository.InsuranceRepository) *Service {
	return &Service{insuranceRepo: insuranceRepo}
}

func (s *Service) Add(ctx context.Context, userID int64, req *model.InsuranceRequest) (*model.InsuranceDetail, error) {
	detail, err := s.fromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.insuranceRepo.Create(ctx, detail); err != nil {
		return nil, fmt.Errorf("failed to create insurance record: %w", err)
	}
	return detail, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*model.InsuranceDetail, error) {
	details, err := s.insuranceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance records: %w", err)
	}
	return details, nil
}

func (s *Service) Get(ctx context.Context, userID, insuranceID int64) (*model.InsuranceDetail, error) {
	detail, err := s.insuranceRepo.GetOwned(ctx, insuranceID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("insurance record", err)
		}
		return nil, fmt.Errorf("failed to get insurance record: %w", err)
	}
	return detail, nil
}

func (s *Service) Update(ctx context.Context, userID, insuranceID int64, req *model.InsuranceRequest) error {
	detail, err := s.fromRequest(userID, req)
	if err != nil {
		return err
	}
	detail.ID = insuranceID
	if err := s.insuranceRepo.UpdateOwned(ctx, detail); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("insurance record", err)
		}
		return fmt.Errorf("failed to update insurance record: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, insuranceID int64) error {
	if err := s.insuranceRepo.DeleteOwned(ctx, insuranceID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("insurance record", err)
		}
		return fmt.Errorf("failed to delete insurance record: %w", err)
	}
	return nil
}

func (s *Service) fromRequest(userID int64, req *model.InsuranceRequest) (*model.InsuranceDetail, error) {
	detail := &model.InsuranceDetail{
		UserID:         userID,
		Provider:       req.Provider,
		PolicyNumber:   req.PolicyNumber,
		CoverageAmount: req.CoverageAmount,
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, apperrors.BadRequest("invalid expiry date", err)
		}
		detail.ExpiryDate = &expiry
	}
	return detail, nil
}
