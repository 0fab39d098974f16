package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a blip stored in MongoDB. A comment with a
// non-empty ParentID is a reply to another comment (one level of threading).
type Comment struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BlipID       string             `json:"blip_id" bson:"blip_id"`
	ParentID     string             `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	AuthorID     string             `json:"author_id" bson:"author_id"`
	Content      string             `json:"content" bson:"content"`
	Likes        []string           `json:"likes" bson:"likes"`
	RepliesCount int                `json:"replies_count" bson:"replies_count"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID string `json:"parent_id,omitempty"`
}
