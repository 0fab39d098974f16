package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"github.com/blipsapp/backend/pkg/blobstore"
	"go.uber.org/zap"
)

// BlipService implements the content store operations on blips: creation,
// deletion and the like/reblip toggles.
type BlipService struct {
	blips    repositories.BlipRepository
	users    repositories.UserRepository
	notifier *NotificationService
	mentions *MentionService
	blobs    blobstore.Store
	logger   *zap.Logger
}

// NewBlipService creates a new BlipService
func NewBlipService(
	blipRepo repositories.BlipRepository,
	userRepo repositories.UserRepository,
	notifier *NotificationService,
	mentionSvc *MentionService,
	blobs blobstore.Store,
	logger *zap.Logger,
) *BlipService {
	return &BlipService{
		blips:    blipRepo,
		users:    userRepo,
		notifier: notifier,
		mentions: mentionSvc,
		blobs:    blobs,
		logger:   logger,
	}
}

// CreateBlip validates and stores a new blip, increments the author's blip
// counter and resolves mentions in the content. The returned record carries
// a concrete creation timestamp.
func (s *BlipService) CreateBlip(ctx context.Context, authorID, content, mediaURL string) (*models.Blip, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}

	blip := &models.Blip{
		AuthorID: authorID,
		Content:  content,
		MediaURL: mediaURL,
	}
	if err := s.blips.Create(ctx, blip); err != nil {
		return nil, err
	}

	if err := s.users.IncBlipsCount(ctx, authorID, 1); err != nil {
		return nil, fmt.Errorf("incrementing blip count: %w", err)
	}

	s.mentions.NotifyMentions(ctx, authorID, blip.ID.Hex(), content)

	return blip, nil
}

// GetBlip returns a blip by id
func (s *BlipService) GetBlip(ctx context.Context, blipID string) (*models.Blip, error) {
	blip, err := s.blips.GetByID(ctx, blipID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return blip, nil
}

// DeleteBlip removes a blip. Only the author may delete; the authorization
// check happens before any write. The media object delete is best-effort:
// the blip deletion is authoritative even when storage cleanup fails.
func (s *BlipService) DeleteBlip(ctx context.Context, blipID, requesterID string) error {
	blip, err := s.blips.GetByID(ctx, blipID)
	if err != nil {
		return mapNotFound(err)
	}
	if blip.AuthorID != requesterID {
		return fmt.Errorf("%w: only the author can delete a blip", ErrUnauthorized)
	}

	if err := s.blips.Delete(ctx, blipID); err != nil {
		return mapNotFound(err)
	}
	if err := s.users.IncBlipsCount(ctx, blip.AuthorID, -1); err != nil {
		return fmt.Errorf("decrementing blip count: %w", err)
	}

	if blip.MediaURL != "" {
		if err := s.blobs.Delete(ctx, blip.MediaURL); err != nil {
			s.logger.Warn("media delete failed",
				zap.String("blip_id", blipID),
				zap.String("media_url", blip.MediaURL),
				zap.Error(err))
		}
	}
	return nil
}

// ToggleLike flips the user's membership in the blip's likes set and returns
// the resulting state. Only the add half notifies the author; the pair of
// calls restores the original state.
func (s *BlipService) ToggleLike(ctx context.Context, blipID, userID string) (bool, error) {
	blip, err := s.blips.GetByID(ctx, blipID)
	if err != nil {
		return false, mapNotFound(err)
	}

	if slices.Contains(blip.Likes, userID) {
		if err := s.blips.RemoveLike(ctx, blipID, userID); err != nil {
			return true, mapNotFound(err)
		}
		return false, nil
	}

	if err := s.blips.AddLike(ctx, blipID, userID); err != nil {
		return false, mapNotFound(err)
	}
	s.notifier.Notify(models.NotificationTypeLike, userID, blip.AuthorID, blipID, "")
	return true, nil
}

// ToggleReblip flips the user's membership in the blip's reblips set with
// the same semantics as ToggleLike.
func (s *BlipService) ToggleReblip(ctx context.Context, blipID, userID string) (bool, error) {
	blip, err := s.blips.GetByID(ctx, blipID)
	if err != nil {
		return false, mapNotFound(err)
	}

	if slices.Contains(blip.Reblips, userID) {
		if err := s.blips.RemoveReblip(ctx, blipID, userID); err != nil {
			return true, mapNotFound(err)
		}
		return false, nil
	}

	if err := s.blips.AddReblip(ctx, blipID, userID); err != nil {
		return false, mapNotFound(err)
	}
	s.notifier.Notify(models.NotificationTypeReblip, userID, blip.AuthorID, blipID, "")
	return true, nil
}
