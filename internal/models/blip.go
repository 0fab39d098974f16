package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blip represents a short post stored in MongoDB. Likes and reblips are
// membership sets of user ids mutated with $addToSet/$pull so concurrent
// toggles cannot corrupt them. ContentLower backs prefix search.
type Blip struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID      string             `json:"author_id" bson:"author_id"`
	Content       string             `json:"content" bson:"content"`
	ContentLower  string             `json:"-" bson:"content_lower"`
	MediaURL      string             `json:"media_url,omitempty" bson:"media_url,omitempty"`
	Likes         []string           `json:"likes" bson:"likes"`
	Reblips       []string           `json:"reblips" bson:"reblips"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// CreateBlipRequest defines the request body for creating a new blip
type CreateBlipRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=280"`
	MediaURL string `json:"media_url,omitempty" validate:"omitempty,url"`
}
