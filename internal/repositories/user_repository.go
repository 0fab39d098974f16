package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blipsapp/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a referenced document or row does not exist.
var ErrNotFound = errors.New("not found")

// Firestore-style upper bound for a prefix range scan: every string with the
// given prefix sorts below prefix + U+F8FF.
const prefixRangeEnd = "\uf8ff"

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	PhotoURL *string
}

// UserRepository defines the interface for user profile data operations
type UserRepository interface {
	EnsureProfile(ctx context.Context, profile *models.UserProfile) error
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error
	SetUsername(ctx context.Context, id, username string) error
	AddFollowing(ctx context.Context, userID, targetID string) error
	RemoveFollowing(ctx context.Context, userID, targetID string) error
	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	IncBlipsCount(ctx context.Context, id string, delta int) error
	SearchByNamePrefix(ctx context.Context, prefix string, limit int64) ([]models.UserProfile, error)
	SearchByUsernamePrefix(ctx context.Context, prefix string, limit int64) ([]models.UserProfile, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique sparse username index that backstops the
// reservation check-then-write race, plus the search indexes.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "name_lower", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	return err
}

// EnsureProfile creates the profile if none exists for the id; an existing
// profile is left untouched, making repeated sign-ins idempotent.
func (r *MongoUserRepository) EnsureProfile(ctx context.Context, profile *models.UserProfile) error {
	now := time.Now()
	onInsert := bson.M{
		"name":        profile.Name,
		"name_lower":  strings.ToLower(profile.Name),
		"email":       profile.Email,
		"photo_url":   profile.PhotoURL,
		"bio":         profile.Bio,
		"followers":   []string{},
		"following":   []string{},
		"blips_count": 0,
		"created_at":  now,
		"updated_at":  now,
	}
	if profile.PasswordHash != "" {
		onInsert["password_hash"] = profile.PasswordHash
	}
	_, err := r.collection.UpdateByID(ctx, profile.ID,
		bson.M{"$setOnInsert": onInsert},
		options.Update().SetUpsert(true),
	)
	return err
}

// GetByID retrieves a profile by id
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail retrieves a profile by email
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByUsername retrieves a profile by reserved username. Usernames are
// stored lowercased, so the lookup is case-insensitive by construction.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"username": strings.ToLower(username)})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the given field changes and refreshes updated_at.
// Username, social sets, counters and the id are not reachable through here.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
		set["name_lower"] = strings.ToLower(*update.Name)
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.PhotoURL != nil {
		set["photo_url"] = *update.PhotoURL
	}
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUsername assigns the (already lowercased, validated) username
func (r *MongoUserRepository) SetUsername(ctx context.Context, id, username string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"username": username, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFollowing adds targetID to the user's following set
func (r *MongoUserRepository) AddFollowing(ctx context.Context, userID, targetID string) error {
	return r.updateSet(ctx, userID, "$addToSet", "following", targetID)
}

// RemoveFollowing removes targetID from the user's following set
func (r *MongoUserRepository) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	return r.updateSet(ctx, userID, "$pull", "following", targetID)
}

// AddFollower adds followerID to the user's followers set
func (r *MongoUserRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return r.updateSet(ctx, userID, "$addToSet", "followers", followerID)
}

// RemoveFollower removes followerID from the user's followers set
func (r *MongoUserRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return r.updateSet(ctx, userID, "$pull", "followers", followerID)
}

func (r *MongoUserRepository) updateSet(ctx context.Context, userID, op, field, member string) error {
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{op: bson.M{field: member}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncBlipsCount adjusts the user's blip counter
func (r *MongoUserRepository) IncBlipsCount(ctx context.Context, id string, delta int) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"blips_count": delta}})
	return err
}

// SearchByNamePrefix scans profiles whose lowercased name falls in the
// prefix range
func (r *MongoUserRepository) SearchByNamePrefix(ctx context.Context, prefix string, limit int64) ([]models.UserProfile, error) {
	return r.findPrefix(ctx, "name_lower", prefix, limit)
}

// SearchByUsernamePrefix scans profiles whose username falls in the prefix
// range
func (r *MongoUserRepository) SearchByUsernamePrefix(ctx context.Context, prefix string, limit int64) ([]models.UserProfile, error) {
	return r.findPrefix(ctx, "username", prefix, limit)
}

func (r *MongoUserRepository) findPrefix(ctx context.Context, field, prefix string, limit int64) ([]models.UserProfile, error) {
	filter := bson.M{field: bson.M{"$gte": prefix, "$lte": prefix + prefixRangeEnd}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
