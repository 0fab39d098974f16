package handlers

import (
	"io"
	"net/http"

	"github.com/blipsapp/backend/pkg/blobstore"
	"github.com/labstack/echo/v4"
)

// maxUploadBytes caps a single media upload at 10 MB
const maxUploadBytes = 10 << 20

// MediaHandler handles media upload HTTP requests
type MediaHandler struct {
	blobs blobstore.Store
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(blobs blobstore.Store) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

// RegisterMediaRoutes registers media upload routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// Upload stores a multipart file and returns its public URL. The returned
// URL is meant to be passed as media_url when creating a blip.
func (h *MediaHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file in request")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds upload size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}

	url, err := h.blobs.Store(c.Request().Context(), data, "media")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store media")
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
