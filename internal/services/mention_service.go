package services

import (
	"context"
	"errors"

	"github.com/blipsapp/backend/internal/mentions"
	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"go.uber.org/zap"
)

// MentionService resolves @username tokens in posted text to user ids and
// fans out mention notifications. Tokens that match no reserved username are
// ignored; they render as styled text but notify nobody.
type MentionService struct {
	users    repositories.UserRepository
	notifier *NotificationService
	logger   *zap.Logger
}

// NewMentionService creates a new MentionService
func NewMentionService(userRepo repositories.UserRepository, notifier *NotificationService, logger *zap.Logger) *MentionService {
	return &MentionService{users: userRepo, notifier: notifier, logger: logger}
}

// NotifyMentions scans text with the shared tokenization rule and notifies
// every resolved user other than the actor, carrying the blip or comment id
// and the raw text. Lookup failures are logged and skipped; mention fan-out
// never fails the posting operation.
func (s *MentionService) NotifyMentions(ctx context.Context, actorID, blipID, text string) {
	for _, username := range mentions.Extract(text) {
		user, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				s.logger.Warn("mention lookup failed",
					zap.String("username", username),
					zap.Error(err))
			}
			continue
		}
		s.notifier.Notify(models.NotificationTypeMention, actorID, user.ID, blipID, text)
	}
}
