package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
)

type Service struct {
	reviewRepo   repository.ReviewRepository
	hospitalRepo repository.HospitalRepository
}

func NewService(reviewRepo repository.ReviewRepository, hospitalRepo repository.HospitalRepository) *Service {
	return &Service{reviewRepo: reviewRepo, hospitalRepo: hospitalRepo}
}

// Submit records the caller's rating of a hospital and doctor.
func (s *Service) Submit(ctx context.Context, userID int64, req *model.SubmitReviewRequest) (*model.Review, error) {
	review := &model.Review{
		UserID:     userID,
		HospitalID: req.HospitalID,
		DoctorID:   req.DoctorID,
		Rating:     req.Rating,
	}
	if req.ReviewText != "" {
		review.ReviewText = &req.ReviewText
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// ListForAdmin returns the reviews of the hospital administered by the
// caller, newest first.
func (s *Service) ListForAdmin(ctx context.Context, adminUserID int64) ([]*model.HospitalReview, error) {
	hospital, err := s.hospitalRepo.GetByAdminID(ctx, adminUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("no hospital assigned to this account", err)
		}
		return nil, fmt.Errorf("failed to resolve hospital: %w", err)
	}
	reviews, err := s.reviewRepo.ListByHospital(ctx, hospital.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
