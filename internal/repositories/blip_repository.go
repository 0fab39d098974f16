package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blipsapp/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlipRepository defines the interface for blip data operations
type BlipRepository interface {
	Create(ctx context.Context, blip *models.Blip) error
	GetByID(ctx context.Context, id string) (*models.Blip, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, blipID, userID string) error
	RemoveLike(ctx context.Context, blipID, userID string) error
	AddReblip(ctx context.Context, blipID, userID string) error
	RemoveReblip(ctx context.Context, blipID, userID string) error
	IncCommentsCount(ctx context.Context, blipID string, delta int) error
	FindByAuthors(ctx context.Context, authorIDs []string, limit int64) ([]models.Blip, error)
	FindByAuthor(ctx context.Context, authorID string, limit int64) ([]models.Blip, error)
	FindAll(ctx context.Context, limit int64) ([]models.Blip, error)
	FindLikedBy(ctx context.Context, userID string, limit int64) ([]models.Blip, error)
	FindReblippedBy(ctx context.Context, userID string, limit int64) ([]models.Blip, error)
	SearchByContentPrefix(ctx context.Context, prefix string, limit int64) ([]models.Blip, error)
}

// MongoBlipRepository implements BlipRepository for MongoDB
type MongoBlipRepository struct {
	collection *mongo.Collection
}

// NewMongoBlipRepository creates a new MongoBlipRepository
func NewMongoBlipRepository(db *mongo.Database) *MongoBlipRepository {
	return &MongoBlipRepository{collection: db.Collection("blips")}
}

// EnsureIndexes creates the feed and search indexes
func (r *MongoBlipRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "content_lower", Value: 1}}},
	})
	return err
}

// blipID parses a hex id; an unparseable id can't reference any document, so
// it maps to ErrNotFound rather than a validation error.
func blipID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return objID, nil
}

// Create inserts a new blip, assigning its id, normalized content and
// creation timestamp
func (r *MongoBlipRepository) Create(ctx context.Context, blip *models.Blip) error {
	blip.ID = primitive.NewObjectID()
	blip.ContentLower = strings.ToLower(blip.Content)
	blip.CreatedAt = time.Now()
	if blip.Likes == nil {
		blip.Likes = []string{}
	}
	if blip.Reblips == nil {
		blip.Reblips = []string{}
	}
	_, err := r.collection.InsertOne(ctx, blip)
	return err
}

// GetByID retrieves a blip by id
func (r *MongoBlipRepository) GetByID(ctx context.Context, id string) (*models.Blip, error) {
	objID, err := blipID(id)
	if err != nil {
		return nil, err
	}

	var blip models.Blip
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&blip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &blip, nil
}

// Delete removes a blip by id
func (r *MongoBlipRepository) Delete(ctx context.Context, id string) error {
	objID, err := blipID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddLike adds userID to the blip's likes set
func (r *MongoBlipRepository) AddLike(ctx context.Context, blipID, userID string) error {
	return r.updateSet(ctx, blipID, "$addToSet", "likes", userID)
}

// RemoveLike removes userID from the blip's likes set
func (r *MongoBlipRepository) RemoveLike(ctx context.Context, blipID, userID string) error {
	return r.updateSet(ctx, blipID, "$pull", "likes", userID)
}

// AddReblip adds userID to the blip's reblips set
func (r *MongoBlipRepository) AddReblip(ctx context.Context, blipID, userID string) error {
	return r.updateSet(ctx, blipID, "$addToSet", "reblips", userID)
}

// RemoveReblip removes userID from the blip's reblips set
func (r *MongoBlipRepository) RemoveReblip(ctx context.Context, blipID, userID string) error {
	return r.updateSet(ctx, blipID, "$pull", "reblips", userID)
}

func (r *MongoBlipRepository) updateSet(ctx context.Context, id, op, field, member string) error {
	objID, err := blipID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{op: bson.M{field: member}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncCommentsCount adjusts the blip's comment counter
func (r *MongoBlipRepository) IncCommentsCount(ctx context.Context, id string, delta int) error {
	objID, err := blipID(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}

// FindByAuthors retrieves blips authored by any of the given users, newest
// first
func (r *MongoBlipRepository) FindByAuthors(ctx context.Context, authorIDs []string, limit int64) ([]models.Blip, error) {
	return r.find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, limit)
}

// FindByAuthor retrieves blips authored by a single user, newest first
func (r *MongoBlipRepository) FindByAuthor(ctx context.Context, authorID string, limit int64) ([]models.Blip, error) {
	return r.find(ctx, bson.M{"author_id": authorID}, limit)
}

// FindAll retrieves all blips, newest first
func (r *MongoBlipRepository) FindAll(ctx context.Context, limit int64) ([]models.Blip, error) {
	return r.find(ctx, bson.M{}, limit)
}

// FindLikedBy retrieves blips whose likes set contains userID, newest first
func (r *MongoBlipRepository) FindLikedBy(ctx context.Context, userID string, limit int64) ([]models.Blip, error) {
	return r.find(ctx, bson.M{"likes": userID}, limit)
}

// FindReblippedBy retrieves blips whose reblips set contains userID, newest
// first
func (r *MongoBlipRepository) FindReblippedBy(ctx context.Context, userID string, limit int64) ([]models.Blip, error) {
	return r.find(ctx, bson.M{"reblips": userID}, limit)
}

// SearchByContentPrefix scans blips whose normalized content falls in the
// prefix range
func (r *MongoBlipRepository) SearchByContentPrefix(ctx context.Context, prefix string, limit int64) ([]models.Blip, error) {
	filter := bson.M{"content_lower": bson.M{"$gte": prefix, "$lte": prefix + prefixRangeEnd}}
	return r.find(ctx, filter, limit)
}

func (r *MongoBlipRepository) find(ctx context.Context, filter bson.M, limit int64) ([]models.Blip, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blips []models.Blip
	if err = cursor.All(ctx, &blips); err != nil {
		return nil, err
	}
	return blips, nil
}
