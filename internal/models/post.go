package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  string             `json:"author_id" bson:"author_id"` // account UUID as string
	Title     string             `json:"title" bson:"title"`
	PostText  string             `json:"post_text" bson:"post_text"`
	ImagePath string             `json:"image_path,omitempty" bson:"image_path,omitempty"`
	Tags      []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	IsDeleted bool               `json:"is_deleted" bson:"is_deleted"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for publishing a new post
type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=200"`
	PostText  string   `json:"post_text" validate:"required,min=1,max=5000"`
	ImagePath string   `json:"image_path,omitempty" validate:"omitempty,url"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}
