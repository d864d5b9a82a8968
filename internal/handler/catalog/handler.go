package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/service/catalog"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

// ListVaccines serves the browsable catalog with optional ?search= and
// ?category= filters.
func (h *Handler) ListVaccines(c *gin.Context) {
	var filter model.VaccineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	vaccines, err := h.service.ListVaccines(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, vaccines)
}

// HospitalsForVaccine lists hospitals stocking one vaccine, optionally
// narrowed by ?city=.
func (h *Handler) HospitalsForVaccine(c *gin.Context) {
	vaccineID, err := pathID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	hospitals, err := h.service.HospitalsForVaccine(c.Request.Context(), vaccineID, c.Query("city"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, hospitals)
}

func (h *Handler) ListHospitals(c *gin.Context) {
	hospitals, err := h.service.ListHospitals(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, hospitals)
}

func (h *Handler) DoctorsForHospital(c *gin.Context) {
	hospitalID, err := pathID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	doctors, err := h.service.DoctorsForHospital(c.Request.Context(), hospitalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

// HospitalInventory is the patient-facing priced stock view of one
// hospital.
func (h *Handler) HospitalInventory(c *gin.Context) {
	hospitalID, err := pathID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if _, err := pathID(c, "doctorId"); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	rows, err := h.service.HospitalInventory(c.Request.Context(), hospitalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) VaccineInformation(c *gin.Context) {
	infos, err := h.service.VaccineInformation(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, infos)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("invalid "+name, err)
	}
	return id, nil
}
