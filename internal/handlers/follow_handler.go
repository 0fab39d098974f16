package handlers

import (
	"net/http"

	"github.com/blipsapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-graph routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
}

// Follow makes the authenticated user follow the target user
func (h *FollowHandler) Follow(c echo.Context) error {
	if err := h.followService.Follow(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// Unfollow removes the authenticated user's follow of the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	if err := h.followService.Unfollow(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": false})
}
