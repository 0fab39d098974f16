package handlers

import (
	"net/http"

	"github.com/blipsapp/backend/internal/mentions"
	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BlipHandler handles blip-related HTTP requests
type BlipHandler struct {
	blipService *services.BlipService
}

// NewBlipHandler creates a new BlipHandler
func NewBlipHandler(blipService *services.BlipService) *BlipHandler {
	return &BlipHandler{blipService: blipService}
}

// RegisterBlipRoutes registers blip-related routes
func (h *BlipHandler) RegisterBlipRoutes(g *echo.Group) {
	g.POST("/blips", h.CreateBlip)
	g.GET("/blips/:id", h.GetBlip)
	g.DELETE("/blips/:id", h.DeleteBlip)
	g.POST("/blips/:id/like", h.ToggleLike)
	g.POST("/blips/:id/reblip", h.ToggleReblip)
}

// CreateBlip publishes a new blip authored by the authenticated user
func (h *BlipHandler) CreateBlip(c echo.Context) error {
	var req models.CreateBlipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	blip, err := h.blipService.CreateBlip(c.Request().Context(), currentUserID(c), req.Content, req.MediaURL)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, blip)
}

// GetBlip returns a single blip. The content is also returned tokenized into
// plain and @-mention segments so clients can link mentions without
// re-implementing the pattern.
func (h *BlipHandler) GetBlip(c echo.Context) error {
	blip, err := h.blipService.GetBlip(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"blip":             blip,
		"content_segments": mentions.Split(blip.Content),
	})
}

// DeleteBlip removes a blip; only the author may delete it
func (h *BlipHandler) DeleteBlip(c echo.Context) error {
	if err := h.blipService.DeleteBlip(c.Request().Context(), c.Param("id"), currentUserID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike flips the authenticated user's like on a blip
func (h *BlipHandler) ToggleLike(c echo.Context) error {
	liked, err := h.blipService.ToggleLike(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// ToggleReblip flips the authenticated user's reblip on a blip
func (h *BlipHandler) ToggleReblip(c echo.Context) error {
	reblipped, err := h.blipService.ToggleReblip(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reblipped": reblipped})
}
