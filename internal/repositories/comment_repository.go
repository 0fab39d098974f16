package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/blipsapp/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	FindByBlip(ctx context.Context, blipID string) ([]models.Comment, error)
	FindReplies(ctx context.Context, parentID string) ([]models.Comment, error)
	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) error
	IncRepliesCount(ctx context.Context, commentID string, delta int) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// EnsureIndexes creates the blip and parent lookup indexes
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "blip_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

// Create inserts a new comment, assigning its id and creation timestamp
func (r *MongoCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetByID retrieves a comment by id
func (r *MongoCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// FindByBlip retrieves all comments on a blip, newest first
func (r *MongoCommentRepository) FindByBlip(ctx context.Context, blipID string) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"blip_id": blipID})
}

// FindReplies retrieves the replies to a comment, newest first
func (r *MongoCommentRepository) FindReplies(ctx context.Context, parentID string) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"parent_id": parentID})
}

func (r *MongoCommentRepository) find(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddLike adds userID to the comment's likes set
func (r *MongoCommentRepository) AddLike(ctx context.Context, commentID, userID string) error {
	return r.updateSet(ctx, commentID, "$addToSet", userID)
}

// RemoveLike removes userID from the comment's likes set
func (r *MongoCommentRepository) RemoveLike(ctx context.Context, commentID, userID string) error {
	return r.updateSet(ctx, commentID, "$pull", userID)
}

func (r *MongoCommentRepository) updateSet(ctx context.Context, id, op, member string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{op: bson.M{"likes": member}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncRepliesCount adjusts the comment's reply counter
func (r *MongoCommentRepository) IncRepliesCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"replies_count": delta}})
	return err
}
