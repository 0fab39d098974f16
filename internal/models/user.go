package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// UserProfile represents a user document stored in MongoDB, keyed by the
// authentication provider's opaque UID. Username stays empty until the user
// reserves one; follower/following membership is maintained with atomic
// set updates by the social graph, never written wholesale.
type UserProfile struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	NameLower    string    `json:"-" bson:"name_lower"`
	Username     string    `json:"username,omitempty" bson:"username,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PhotoURL     string    `json:"photo_url" bson:"photo_url"`
	Bio          string    `json:"bio" bson:"bio"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	Followers    []string  `json:"followers" bson:"followers"`
	Following    []string  `json:"following" bson:"following"`
	BlipsCount   int       `json:"blips_count" bson:"blips_count"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// UserSearchResult is a profile annotated with the requester's follow state.
type UserSearchResult struct {
	UserProfile
	IsFollowing bool `json:"is_following"`
}

// UpdateProfileRequest defines the mutable profile fields. Username, social
// sets, counters and the id are not updatable through this path.
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=160"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// ReserveUsernameRequest defines the request body for claiming a username
type ReserveUsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

// SignupRequest defines the request body for local email/password signup
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for local email/password sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
