package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository defines the read operations the engines need on accounts
type AccountRepository interface {
	FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindAccountsWithBirthday(ctx context.Context, day time.Time) ([]models.Account, error)
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// FindAccountByID returns the account, or nil when it does not exist
func (r *PostgresAccountRepository) FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account %s: %w", id, err)
	}
	return &account, nil
}

// FindAccountsWithBirthday returns live accounts born on the month and day of the given date
func (r *PostgresAccountRepository) FindAccountsWithBirthday(ctx context.Context, day time.Time) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Where("EXTRACT(MONTH FROM birth_date) = ? AND EXTRACT(DAY FROM birth_date) = ?", int(day.Month()), day.Day()).
		Order("id").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("find birthday accounts: %w", err)
	}
	return accounts, nil
}
