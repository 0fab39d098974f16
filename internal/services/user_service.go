package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Defaults applied when the auth provider supplies no value
const (
	defaultDisplayName = "Anonymous User"
	defaultBio         = "Welcome to my Blips profile! 👋"
	defaultAvatarURL   = "/default-avatar.svg"
)

// usernamePattern: 3-20 word characters. Reservation lowercases before
// storing, so uniqueness is case-insensitive.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// AuthIdentity is what the authentication capability hands us on sign-in.
type AuthIdentity struct {
	UserID   string
	Name     string
	Email    string
	PhotoURL string
}

// UserService implements the identity store: profile lifecycle and username
// reservation.
type UserService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: userRepo, logger: logger}
}

// EnsureProfile creates a profile for the identity if none exists, filling
// provider gaps with defaults. Safe to call on every sign-in.
func (s *UserService) EnsureProfile(ctx context.Context, identity AuthIdentity) error {
	profile := &models.UserProfile{
		ID:       identity.UserID,
		Name:     identity.Name,
		Email:    identity.Email,
		PhotoURL: identity.PhotoURL,
		Bio:      defaultBio,
	}
	if profile.Name == "" {
		profile.Name = defaultDisplayName
	}
	if profile.PhotoURL == "" {
		profile.PhotoURL = defaultAvatarURL
	}
	return s.users.EnsureProfile(ctx, profile)
}

// GetProfile returns the profile for the id
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	profile, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return profile, nil
}

// GetByEmail returns the profile registered under the email address
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	profile, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return profile, nil
}

// RegisterLocal creates a profile for email/password sign-up with a
// generated id. The caller checks the email is unclaimed first.
func (s *UserService) RegisterLocal(ctx context.Context, name, email, passwordHash string) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PhotoURL:     defaultAvatarURL,
		Bio:          defaultBio,
		PasswordHash: passwordHash,
	}
	if profile.Name == "" {
		profile.Name = defaultDisplayName
	}
	if err := s.users.EnsureProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, profile.ID)
}

// GetByUsername returns the profile holding the (case-insensitive) username
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	profile, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return profile, nil
}

// UpdateProfile applies the mutable profile fields and returns the updated
// profile. Username, social sets, counters and the id cannot be changed here.
func (s *UserService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	update := repositories.ProfileUpdate{}
	if req.Name != "" {
		update.Name = &req.Name
	}
	if req.Bio != "" {
		update.Bio = &req.Bio
	}
	if req.PhotoURL != "" {
		update.PhotoURL = &req.PhotoURL
	}

	if err := s.users.UpdateProfile(ctx, id, update); err != nil {
		return nil, mapNotFound(err)
	}
	return s.GetProfile(ctx, id)
}

// ReserveUsername validates the candidate, checks case-insensitive global
// uniqueness and assigns it. A malformed or taken candidate is reported as
// ok=false, not an error: it is an expected outcome. The availability check
// races concurrent reservations; the unique storage index is the backstop.
func (s *UserService) ReserveUsername(ctx context.Context, id, candidate string) (bool, error) {
	if !usernamePattern.MatchString(candidate) {
		return false, nil
	}
	username := strings.ToLower(candidate)

	holder, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		// Re-reserving your own username is a no-op success.
		return holder.ID == id, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	if err := s.users.SetUsername(ctx, id, username); err != nil {
		return false, mapNotFound(err)
	}
	return true, nil
}
