package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
)

// Per-query result caps for the search read paths
const (
	userSearchLimit = 20
	blipSearchLimit = 20
)

// SearchService runs prefix-range lookups over users and blips.
type SearchService struct {
	users repositories.UserRepository
	blips repositories.BlipRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(userRepo repositories.UserRepository, blipRepo repositories.BlipRepository) *SearchService {
	return &SearchService{users: userRepo, blips: blipRepo}
}

// SearchUsers matches profiles whose lowercased name or username starts with
// the prefix, merging both scans and deduplicating by user id. Each result
// is annotated with whether the requester currently follows that user
// (always false without a requester).
func (s *SearchService) SearchUsers(ctx context.Context, prefix, requesterID string) ([]models.UserSearchResult, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, fmt.Errorf("%w: search prefix must not be empty", ErrInvalidInput)
	}

	byName, err := s.users.SearchByNamePrefix(ctx, prefix, userSearchLimit)
	if err != nil {
		return nil, err
	}
	byUsername, err := s.users.SearchByUsernamePrefix(ctx, prefix, userSearchLimit)
	if err != nil {
		return nil, err
	}

	var following []string
	if requesterID != "" {
		requester, err := s.users.GetByID(ctx, requesterID)
		if err == nil {
			following = requester.Following
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(byName)+len(byUsername))
	results := make([]models.UserSearchResult, 0, len(byName)+len(byUsername))
	for _, profile := range append(byName, byUsername...) {
		if seen[profile.ID] {
			continue
		}
		seen[profile.ID] = true
		results = append(results, models.UserSearchResult{
			UserProfile: profile,
			IsFollowing: slices.Contains(following, profile.ID),
		})
	}
	return results, nil
}

// SearchBlips matches blips whose normalized content starts with the prefix,
// newest first, capped at 20.
func (s *SearchService) SearchBlips(ctx context.Context, prefix string) ([]models.Blip, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, fmt.Errorf("%w: search prefix must not be empty", ErrInvalidInput)
	}
	return s.blips.SearchByContentPrefix(ctx, prefix, blipSearchLimit)
}
