package handlers

import (
	"net/http"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/blips/:blip_id/comments", h.CreateComment)
	g.GET("/blips/:blip_id/comments", h.ListComments)
	g.GET("/comments/:id", h.GetComment)
	g.GET("/comments/:id/replies", h.ListReplies)
	g.POST("/comments/:id/like", h.ToggleLike)
}

// CreateComment adds a comment to a blip, optionally as a reply to an
// existing comment on the same blip
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), c.Param("blip_id"), currentUserID(c), req.Content, req.ParentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments returns the top-level comments of a blip, oldest first
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.commentService.ListForBlip(c.Request().Context(), c.Param("blip_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// GetComment returns a single comment by id
func (h *CommentHandler) GetComment(c echo.Context) error {
	comment, err := h.commentService.GetComment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// ListReplies returns the direct replies of a comment, oldest first
func (h *CommentHandler) ListReplies(c echo.Context) error {
	replies, err := h.commentService.ListReplies(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, replies)
}

// ToggleLike flips the authenticated user's like on a comment
func (h *CommentHandler) ToggleLike(c echo.Context) error {
	liked, err := h.commentService.ToggleLike(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}
