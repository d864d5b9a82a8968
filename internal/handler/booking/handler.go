package booking

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vaxtrack/booking-api/internal/middleware"
	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/service/booking"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

// CreateCheckoutSession starts the paid booking flow and answers with a
// 303 redirect to the provider's hosted checkout page.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	url, err := h.service.Checkout(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}

// Success is the provider's payment-success callback. It creates the
// appointment exactly once per checkout session and forwards the
// browser to the review prompt.
func (h *Handler) Success(c *gin.Context) {
	doctorID, err := queryID(c, "doctor_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	hospitalID, err := queryID(c, "hospital_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	vaccineID, err := queryID(c, "vaccine_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.Confirm(c.Request.Context(), middleware.UserID(c), booking.ConfirmParams{
		CheckoutRef:     c.Query("session_id"),
		AppointmentDate: c.Query("appointment_date"),
		AppointmentTime: c.Query("appointment_time"),
		DoctorID:        doctorID,
		HospitalID:      hospitalID,
		VaccineID:       vaccineID,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/review?appointment_id=%d", apt.ID))
}

// PaymentFailure is where the provider's cancel URL lands. Nothing was
// booked and no stock moved.
func (h *Handler) PaymentFailure(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{
		"payment_failed": true,
		"message":        "payment was not completed, no appointment was booked",
	})
}

// ReviewPrompt serves the appointment summary shown right after payment.
func (h *Handler) ReviewPrompt(c *gin.Context) {
	appointmentID, err := strconv.ParseInt(c.Query("appointment_id"), 10, 64)
	if err != nil || appointmentID <= 0 {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment_id", err))
		return
	}

	detail, err := h.service.ReviewPrompt(c.Request.Context(), appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, detail)
}

func (h *Handler) MyAppointments(c *gin.Context) {
	appointments, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Cancel(c *gin.Context) {
	appointmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || appointmentID <= 0 {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), middleware.UserID(c), appointmentID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "appointment canceled"})
}

func (h *Handler) Reschedule(c *gin.Context) {
	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.Reschedule(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "appointment rescheduled"})
}

func queryID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("invalid "+name, err)
	}
	return id, nil
}
