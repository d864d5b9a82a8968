package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vaxtrack/booking-api/internal/service/admin"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/httputil"
)

// Handler serves the site-admin console. Routes are gated to role=admin
// by the router.
type Handler struct {
	service *admin.Service
}

func NewHandler(service *admin.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dashboard)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "user deleted"})
}

func (h *Handler) DeleteHospital(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if err := h.service.DeleteHospital(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "hospital deleted"})
}

func (h *Handler) DeleteVaccine(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if err := h.service.DeleteVaccine(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "vaccine deleted"})
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("invalid id", err)
	}
	return id, nil
}
