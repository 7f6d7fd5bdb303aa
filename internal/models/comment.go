package models

import (
	"time"

	"github.com/google/uuid"
)

// CommentType tells whether a comment sits directly under a post or replies to another comment.
type CommentType string

const (
	CommentOnPost    CommentType = "POST"
	CommentOnComment CommentType = "COMMENT"
)

// Comment represents a comment on a post or a reply to another comment
type Comment struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CommentType CommentType `json:"comment_type" gorm:"type:varchar(10);not null"`
	PostID      string      `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	ParentID    *uuid.UUID  `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	AuthorID    uuid.UUID   `json:"author_id" gorm:"type:uuid;not null;index"`
	CommentText string      `json:"comment_text" gorm:"type:text"`
	IsDeleted   bool        `json:"is_deleted" gorm:"default:false"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID      string     `json:"post_id" validate:"required"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CommentText string     `json:"comment_text" validate:"required,min=1,max=1000"`
}
