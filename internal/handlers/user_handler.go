package handlers

import (
	"net/http"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and username HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/username", h.ReserveUsername)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/by-username/:username", h.GetUserByUsername)
}

// GetOwnProfile returns the authenticated user's profile
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	profile, err := h.userService.GetProfile(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's mutable profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.userService.UpdateProfile(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// ReserveUsername attempts to claim a username for the authenticated user.
// A taken or malformed candidate is reported as reserved=false, not an error.
func (h *UserHandler) ReserveUsername(c echo.Context) error {
	var req models.ReserveUsernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reserved, err := h.userService.ReserveUsername(c.Request().Context(), currentUserID(c), req.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reserved": reserved})
}

// GetUser returns a user's public profile by id
func (h *UserHandler) GetUser(c echo.Context) error {
	profile, err := h.userService.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetUserByUsername returns a user's public profile by username
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	profile, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
