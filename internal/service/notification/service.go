package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vaxtrack/booking-api/internal/email"
	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
)

const emailSubject = "VaxTrack notification"

type Service struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	emailSvc email.Service
}

func NewService(repo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

// Notify appends a pending notification for the user and relays it over
// email when a relay is configured. Relay failures are logged, never
// surfaced: the database row is the source of truth.
func (s *Service) Notify(ctx context.Context, userID int64, message string) error {
	n := &model.Notification{
		UserID:  userID,
		Message: message,
		Status:  model.NotificationStatusPending,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("notification email skipped: user lookup failed")
		return nil
	}
	if err := s.emailSvc.Send(ctx, user.Email, emailSubject, message); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("notification email relay failed")
	}
	return nil
}

// List returns the caller's notifications newest-first, then transitions
// every currently pending one to delivered. Re-listing leaves
// already-delivered rows untouched.
func (s *Service) List(ctx context.Context, userID int64) ([]*model.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	if err := s.repo.MarkDelivered(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to mark notifications delivered: %w", err)
	}
	return notifications, nil
}
