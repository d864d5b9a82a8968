package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/payment"
	"github.com/vaxtrack/booking-api/internal/repository"
	"github.com/vaxtrack/booking-api/internal/service/notification"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ConfirmParams are the payment-provider success callback parameters.
// CheckoutRef is the provider checkout session id and acts as the
// idempotency key for the appointment insert.
type ConfirmParams struct {
	CheckoutRef     string
	AppointmentDate string
	AppointmentTime string
	DoctorID        int64
	HospitalID      int64
	VaccineID       int64
}

type Service struct {
	inventoryRepo   repository.InventoryRepository
	appointmentRepo repository.AppointmentRepository
	provider        payment.Provider
	notifSvc        *notification.Service
	baseURL         string
	currency        string
	now             func() time.Time
}

func NewService(
	inventoryRepo repository.InventoryRepository,
	appointmentRepo repository.AppointmentRepository,
	provider payment.Provider,
	notifSvc *notification.Service,
	baseURL, currency string,
) *Service {
	return &Service{
		inventoryRepo:   inventoryRepo,
		appointmentRepo: appointmentRepo,
		provider:        provider,
		notifSvc:        notifSvc,
		baseURL:         baseURL,
		currency:        currency,
		now:             time.Now,
	}
}

// Checkout resolves the unit price and creates a hosted checkout
// session. The returned URL is where the caller is redirected; the
// appointment itself is only created by the success callback.
func (s *Service) Checkout(ctx context.Context, req *model.CheckoutRequest) (string, error) {
	if _, err := parseDateTime(req.AppointmentDate, req.AppointmentTime); err != nil {
		return "", apperrors.BadRequest("invalid appointment date or time", err)
	}

	price, err := s.inventoryRepo.GetPrice(ctx, req.VaccineID, req.HospitalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.BadRequest("vaccine not found for this hospital", err)
		}
		return "", fmt.Errorf("failed to resolve price: %w", err)
	}

	successURL := fmt.Sprintf(
		"%s/success?appointment_date=%s&appointment_time=%s&doctor_id=%d&hospital_id=%d&vaccine_id=%d&session_id={CHECKOUT_SESSION_ID}",
		s.baseURL,
		url.QueryEscape(req.AppointmentDate),
		url.QueryEscape(req.AppointmentTime),
		req.DoctorID,
		req.HospitalID,
		req.VaccineID,
	)

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		Name:        fmt.Sprintf("Vaccine appointment, vaccine %d", req.VaccineID),
		Description: fmt.Sprintf("Hospital %d, doctor %d", req.HospitalID, req.DoctorID),
		Currency:    s.currency,
		AmountMinor: int64(math.Round(price * 100)),
		SuccessURL:  successURL,
		CancelURL:   s.baseURL + "/vaccines?payment_failed=true",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session.URL, nil
}

// Confirm handles the success callback: it inserts the confirmed
// appointment and decrements stock in one transaction. A replayed
// callback with a known checkout ref returns the appointment already
// created for it, without side effects.
func (s *Service) Confirm(ctx context.Context, userID int64, params ConfirmParams) (*model.Appointment, error) {
	if params.CheckoutRef != "" {
		existing, err := s.appointmentRepo.GetByCheckoutRef(ctx, params.CheckoutRef)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check checkout ref: %w", err)
		}
	}

	when, err := parseDateTime(params.AppointmentDate, params.AppointmentTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid appointment date or time", err)
	}

	apt := &model.Appointment{
		UserID:          userID,
		DoctorID:        params.DoctorID,
		VaccineID:       params.VaccineID,
		HospitalID:      params.HospitalID,
		AppointmentDate: when,
	}
	if params.CheckoutRef != "" {
		apt.CheckoutRef = &params.CheckoutRef
	}

	if err := s.appointmentRepo.Confirm(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrOutOfStock) {
			return nil, apperrors.Conflict("vaccine is out of stock at this hospital", err)
		}
		return nil, fmt.Errorf("failed to process appointment: %w", err)
	}

	s.notify(ctx, userID, fmt.Sprintf(
		"Your appointment on %s has been confirmed.", when.Format("2006-01-02 15:04")))

	return apt, nil
}

// ListMine returns the caller's appointments with display names,
// ordered by appointment date.
func (s *Service) ListMine(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error) {
	appointments, err := s.appointmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Cancel removes the caller's appointment and restocks the inventory by
// one, transactionally. A second cancel of the same id reports
// not-found.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID int64) error {
	apt, err := s.appointmentRepo.GetOwned(ctx, appointmentID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := s.appointmentRepo.Cancel(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.notify(ctx, userID, fmt.Sprintf(
		"Your appointment for vaccine %d at hospital %d has been canceled.",
		apt.VaccineID, apt.HospitalID))

	return nil
}

// Reschedule moves the caller's appointment to a new date. Dates
// strictly before today are rejected; time of day is not considered.
func (s *Service) Reschedule(ctx context.Context, userID int64, req *model.RescheduleRequest) error {
	newDate, err := time.Parse(dateLayout, req.NewAppointmentDate)
	if err != nil {
		return apperrors.BadRequest("invalid appointment date", err)
	}

	today := s.now().Truncate(24 * time.Hour)
	if newDate.Before(today) {
		return apperrors.BadRequest("cannot reschedule to a past date", nil)
	}

	if err := s.appointmentRepo.Reschedule(ctx, req.AppointmentID, userID, newDate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return fmt.Errorf("failed to reschedule appointment: %w", err)
	}
	return nil
}

// ReviewPrompt fetches the appointment detail shown on the post-payment
// review page.
func (s *Service) ReviewPrompt(ctx context.Context, appointmentID int64) (*model.AppointmentDetail, error) {
	detail, err := s.appointmentRepo.GetDetail(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment detail: %w", err)
	}
	return detail, nil
}

func (s *Service) notify(ctx context.Context, userID int64, message string) {
	if err := s.notifSvc.Notify(ctx, userID, message); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("failed to record notification")
	}
}

func parseDateTime(date, clock string) (time.Time, error) {
	return time.Parse(dateLayout+" "+timeLayout, date+" "+clock)
}
