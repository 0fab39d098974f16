package handlers

import (
	"net/http"

	"github.com/blipsapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles timeline and feed HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.FollowingFeed)
	g.GET("/feed/global", h.GlobalFeed)
	g.GET("/users/:id/blips", h.ProfileTimeline)
	g.GET("/users/:id/likes", h.LikedTimeline)
}

// FollowingFeed returns recent blips from followed users plus the
// authenticated user's own, newest first
func (h *FeedHandler) FollowingFeed(c echo.Context) error {
	blips, err := h.feedService.FollowingFeed(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blips)
}

// GlobalFeed returns the most recent blips across all users
func (h *FeedHandler) GlobalFeed(c echo.Context) error {
	blips, err := h.feedService.GlobalFeed(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blips)
}

// ProfileTimeline returns a user's authored and reblipped blips, newest first
func (h *FeedHandler) ProfileTimeline(c echo.Context) error {
	blips, err := h.feedService.ProfileTimeline(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blips)
}

// LikedTimeline returns the blips a user has liked. Only the owner may view
// their own liked timeline.
func (h *FeedHandler) LikedTimeline(c echo.Context) error {
	userID := c.Param("id")
	if userID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Liked blips are only visible to their owner")
	}

	blips, err := h.feedService.LikedTimeline(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blips)
}
