package handlers

import (
	"net/http"

	"github.com/blipsapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SearchHandler handles prefix search HTTP requests
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// RegisterSearchRoutes registers search-related routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search/users", h.SearchUsers)
	g.GET("/search/blips", h.SearchBlips)
}

// SearchUsers finds users whose name or username starts with the query,
// annotated with whether the requester already follows each result
func (h *SearchHandler) SearchUsers(c echo.Context) error {
	results, err := h.searchService.SearchUsers(c.Request().Context(), c.QueryParam("q"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// SearchBlips finds blips whose content starts with the query
func (h *SearchHandler) SearchBlips(c echo.Context) error {
	results, err := h.searchService.SearchBlips(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, results)
}
