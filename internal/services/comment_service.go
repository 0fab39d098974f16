package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"go.uber.org/zap"
)

// CommentService implements the content store operations on comments and
// one level of threaded replies.
type CommentService struct {
	comments repositories.CommentRepository
	blips    repositories.BlipRepository
	notifier *NotificationService
	mentions *MentionService
	logger   *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	blipRepo repositories.BlipRepository,
	notifier *NotificationService,
	mentionSvc *MentionService,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: commentRepo,
		blips:    blipRepo,
		notifier: notifier,
		mentions: mentionSvc,
		logger:   logger,
	}
}

// CreateComment stores a comment against a blip. The blip's comment counter
// increments exactly once per comment regardless of threading depth; a reply
// additionally increments its parent comment's reply counter. The blip
// author and, for replies, the parent comment author are notified, each
// suppressed on self-action. Mentions in the content are resolved last.
func (s *CommentService) CreateComment(ctx context.Context, blipID, authorID, content, parentID string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}

	blip, err := s.blips.GetByID(ctx, blipID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var parent *models.Comment
	if parentID != "" {
		parent, err = s.comments.GetByID(ctx, parentID)
		if err != nil {
			return nil, mapNotFound(err)
		}
		if parent.BlipID != blipID {
			return nil, fmt.Errorf("%w: parent comment belongs to a different blip", ErrInvalidInput)
		}
	}

	comment := &models.Comment{
		BlipID:   blipID,
		ParentID: parentID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.blips.IncCommentsCount(ctx, blipID, 1); err != nil {
		return nil, fmt.Errorf("incrementing comment count: %w", err)
	}

	s.notifier.Notify(models.NotificationTypeComment, authorID, blip.AuthorID, blipID, content)

	if parent != nil {
		if err := s.comments.IncRepliesCount(ctx, parentID, 1); err != nil {
			return nil, fmt.Errorf("incrementing reply count: %w", err)
		}
		s.notifier.Notify(models.NotificationTypeComment, authorID, parent.AuthorID, blipID, content)
	}

	s.mentions.NotifyMentions(ctx, authorID, blipID, content)

	return comment, nil
}

// GetComment returns a comment by id
func (s *CommentService) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return comment, nil
}

// ListForBlip returns all comments on a blip, newest first
func (s *CommentService) ListForBlip(ctx context.Context, blipID string) ([]models.Comment, error) {
	if _, err := s.blips.GetByID(ctx, blipID); err != nil {
		return nil, mapNotFound(err)
	}
	return s.comments.FindByBlip(ctx, blipID)
}

// ListReplies returns the replies to a comment, newest first
func (s *CommentService) ListReplies(ctx context.Context, commentID string) ([]models.Comment, error) {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return nil, mapNotFound(err)
	}
	return s.comments.FindReplies(ctx, commentID)
}

// ToggleLike flips the user's membership in the comment's likes set with the
// same toggle semantics as blip likes, notifying the comment's author on the
// add half only.
func (s *CommentService) ToggleLike(ctx context.Context, commentID, userID string) (bool, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return false, mapNotFound(err)
	}

	if slices.Contains(comment.Likes, userID) {
		if err := s.comments.RemoveLike(ctx, commentID, userID); err != nil {
			return true, mapNotFound(err)
		}
		return false, nil
	}

	if err := s.comments.AddLike(ctx, commentID, userID); err != nil {
		return false, mapNotFound(err)
	}
	s.notifier.Notify(models.NotificationTypeLike, userID, comment.AuthorID, comment.BlipID, "")
	return true, nil
}
