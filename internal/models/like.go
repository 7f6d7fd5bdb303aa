package models

import (
	"time"

	"github.com/google/uuid"
)

// LikeType is the kind of item a like points at.
type LikeType string

const (
	LikeOnPost    LikeType = "POST"
	LikeOnComment LikeType = "COMMENT"
)

// Like represents a like on a post or a comment
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_author_item"`
	Type      LikeType  `json:"type" gorm:"type:varchar(10);not null;uniqueIndex:idx_like_author_item"`
	ItemID    string    `json:"item_id" gorm:"not null;uniqueIndex:idx_like_author_item"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLikeRequest defines the request body for liking a post or a comment
type CreateLikeRequest struct {
	Type   LikeType `json:"type" validate:"required,oneof=POST COMMENT"`
	ItemID string   `json:"item_id" validate:"required"`
}
