package inventory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaxtrack/booking-api/internal/handler/upload"
	"github.com/vaxtrack/booking-api/internal/middleware"
	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/service/inventory"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/httputil"
)

type Handler struct {
	service *inventory.Service
	uploads *upload.Handler
}

func NewHandler(service *inventory.Service, uploads *upload.Handler) *Handler {
	return &Handler{service: service, uploads: uploads}
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dashboard)
}

func (h *Handler) View(c *gin.Context) {
	rows, err := h.service.View(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

// Add accepts a multipart form with the inventory fields plus an
// optional vaccine image.
func (h *Handler) Add(c *gin.Context) {
	var req model.AddInventoryRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	var imageURL string
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err = h.uploads.Save(c, file)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid image upload", err))
		return
	}

	if err := h.service.Add(c.Request.Context(), middleware.UserID(c), &req, imageURL); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, gin.H{"message": "inventory added"})
}

func (h *Handler) UpdateStock(c *gin.Context) {
	var req model.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.UpdateStock(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "stock updated"})
}

func (h *Handler) Remove(c *gin.Context) {
	var req model.RemoveInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.UserID(c), req.InventoryID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "inventory removed"})
}

func (h *Handler) Expired(c *gin.Context) {
	rows, err := h.service.Expired(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}
