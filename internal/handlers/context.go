package handlers

import (
	"errors"
	"net/http"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user id placed in the context by
// the JWT middleware; empty when unauthenticated.
func currentUserID(c echo.Context) string {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return ""
	}
	return claims.UserID
}

// httpError maps service taxonomy errors to HTTP status codes
func httpError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
