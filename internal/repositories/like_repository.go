package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyLiked is returned when the author already liked the item
var ErrAlreadyLiked = errors.New("item already liked")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	err := r.db.WithContext(ctx).Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyLiked
	}
	if err != nil {
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}
