package upload

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/httputil"
)

const fileField = "image"

// Handler stores multipart uploads under a flat directory with uuid
// names, served back under /uploads/.
type Handler struct {
	dir string
}

func NewHandler(dir string) *Handler {
	return &Handler{dir: dir}
}

// Save writes one uploaded file and returns its public URL path.
func (h *Handler) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, name)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return "/uploads/" + name, nil
}

// Upload is the generic upload endpoint.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile(fileField)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("missing image file", err))
		return
	}

	url, err := h.Save(c, file)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, gin.H{"url": url})
}
