package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"go.uber.org/zap"
)

// FollowService maintains the symmetric follower relation: targetID in
// following(follower) iff followerID in followers(target). The two document
// writes are not transactional; the second write failing triggers a
// compensating removal of the first so the relation stays symmetric.
type FollowService struct {
	users    repositories.UserRepository
	notifier *NotificationService
	logger   *zap.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(userRepo repositories.UserRepository, notifier *NotificationService, logger *zap.Logger) *FollowService {
	return &FollowService{users: userRepo, notifier: notifier, logger: logger}
}

// Follow makes followerID follow targetID. Following yourself is rejected.
// Calling Follow when already following is a no-op and in particular emits
// no second notification, so membership is checked before any write.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return fmt.Errorf("%w: cannot follow yourself", ErrInvalidInput)
	}

	follower, err := s.users.GetByID(ctx, followerID)
	if err != nil {
		return mapNotFound(err)
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return mapNotFound(err)
	}
	if slices.Contains(follower.Following, targetID) {
		return nil
	}

	if err := s.users.AddFollowing(ctx, followerID, targetID); err != nil {
		return mapNotFound(err)
	}
	if err := s.users.AddFollower(ctx, targetID, followerID); err != nil {
		if cerr := s.users.RemoveFollowing(ctx, followerID, targetID); cerr != nil {
			s.logger.Error("follow compensation failed, relation left asymmetric",
				zap.String("follower", followerID),
				zap.String("target", targetID),
				zap.Error(cerr))
		}
		return mapNotFound(err)
	}

	s.notifier.Notify(models.NotificationTypeFollow, followerID, targetID, "", "")
	return nil
}

// Unfollow removes the relation in both directions with the same
// compensation scheme. Unfollowing someone you don't follow is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return fmt.Errorf("%w: cannot unfollow yourself", ErrInvalidInput)
	}

	follower, err := s.users.GetByID(ctx, followerID)
	if err != nil {
		return mapNotFound(err)
	}
	if !slices.Contains(follower.Following, targetID) {
		return nil
	}

	if err := s.users.RemoveFollowing(ctx, followerID, targetID); err != nil {
		return mapNotFound(err)
	}
	if err := s.users.RemoveFollower(ctx, targetID, followerID); err != nil {
		if cerr := s.users.AddFollowing(ctx, followerID, targetID); cerr != nil {
			s.logger.Error("unfollow compensation failed, relation left asymmetric",
				zap.String("follower", followerID),
				zap.String("target", targetID),
				zap.Error(cerr))
		}
		return mapNotFound(err)
	}
	return nil
}
