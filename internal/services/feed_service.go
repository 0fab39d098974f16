package services

import (
	"context"
	"sort"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
)

// feedLimit caps every feed query
const feedLimit = 50

// FeedService composes the read-only feed and timeline queries. It never
// mutates state and may observe slightly stale data relative to concurrent
// writes.
type FeedService struct {
	blips repositories.BlipRepository
	users repositories.UserRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(blipRepo repositories.BlipRepository, userRepo repositories.UserRepository) *FeedService {
	return &FeedService{blips: blipRepo, users: userRepo}
}

// FollowingFeed returns the newest blips authored by the user or anyone they
// follow.
func (s *FeedService) FollowingFeed(ctx context.Context, userID string) ([]models.Blip, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	authors := make([]string, 0, len(user.Following)+1)
	authors = append(authors, user.Following...)
	authors = append(authors, userID)

	return s.blips.FindByAuthors(ctx, authors, feedLimit)
}

// GlobalFeed returns the newest blips across all authors
func (s *FeedService) GlobalFeed(ctx context.Context) ([]models.Blip, error) {
	return s.blips.FindAll(ctx, feedLimit)
}

// ProfileTimeline returns the union of blips the user authored and blips
// they reblipped, deduplicated by blip id and ordered by each blip's own
// creation time, newest first. A blip both authored and reblipped by the
// profile owner appears once.
func (s *FeedService) ProfileTimeline(ctx context.Context, userID string) ([]models.Blip, error) {
	authored, err := s.blips.FindByAuthor(ctx, userID, feedLimit)
	if err != nil {
		return nil, err
	}
	reblipped, err := s.blips.FindReblippedBy(ctx, userID, feedLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(authored)+len(reblipped))
	timeline := make([]models.Blip, 0, len(authored)+len(reblipped))
	for _, blip := range append(authored, reblipped...) {
		id := blip.ID.Hex()
		if seen[id] {
			continue
		}
		seen[id] = true
		timeline = append(timeline, blip)
	}

	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].CreatedAt.After(timeline[j].CreatedAt)
	})
	return timeline, nil
}

// LikedTimeline returns the newest blips the user has liked. The HTTP layer
// only exposes this to the profile owner.
func (s *FeedService) LikedTimeline(ctx context.Context, userID string) ([]models.Blip, error) {
	return s.blips.FindLikedBy(ctx, userID, feedLimit)
}
