package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-midea/socialnet/internal/friends"
	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipRepository defines the read side of the friend graph
type FriendshipRepository interface {
	friends.GraphQuery
	FriendAccounts(ctx context.Context, accountID uuid.UUID) ([]models.Account, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// DirectFriendIDs returns the accounts with a FRIEND edge from accountID
func (r *PostgresFriendshipRepository) DirectFriendIDs(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("account_from_id = ? AND status_code = ?", accountID, models.StatusFriend).
		Order("created_at").
		Pluck("requested_account_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("direct friends of %s: %w", accountID, err)
	}
	return ids, nil
}

// FriendsOfFriendsIDs returns the distinct live friends of friendIDs, without
// accountID and without friendIDs themselves
func (r *PostgresFriendshipRepository) FriendsOfFriendsIDs(ctx context.Context, accountID uuid.UUID, friendIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(friendIDs) == 0 {
		return nil, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Distinct().
		Joins("JOIN accounts ON accounts.id = friends.requested_account_id").
		Where("friends.account_from_id IN ? AND friends.status_code = ?", friendIDs, models.StatusFriend).
		Where("friends.requested_account_id <> ? AND friends.requested_account_id NOT IN ?", accountID, friendIDs).
		Where("accounts.is_deleted = ?", false).
		Order("friends.requested_account_id").
		Pluck("friends.requested_account_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("friends of friends of %s: %w", accountID, err)
	}
	return ids, nil
}

// RecommendationIDs returns live accounts matching cond that are in neither
// friendIDs nor friendsFriendsIDs
func (r *PostgresFriendshipRepository) RecommendationIDs(ctx context.Context, friendIDs, friendsFriendsIDs []uuid.UUID, cond friends.Condition) ([]uuid.UUID, error) {
	q := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("accounts.is_deleted = ?", false).
		Where(cond.Expression())
	if len(friendIDs) > 0 {
		q = q.Where("accounts.id NOT IN ?", friendIDs)
	}
	if len(friendsFriendsIDs) > 0 {
		q = q.Where("accounts.id NOT IN ?", friendsFriendsIDs)
	}

	var ids []uuid.UUID
	if err := q.Order("accounts.created_at").Pluck("accounts.id", &ids).Error; err != nil {
		return nil, fmt.Errorf("recommendation candidates: %w", err)
	}
	return ids, nil
}

// HydrateProfiles loads short profiles for ids, keeping the order of ids
func (r *PostgresFriendshipRepository) HydrateProfiles(ctx context.Context, ids []uuid.UUID) ([]models.FriendShort, error) {
	if len(ids) == 0 {
		return []models.FriendShort{}, nil
	}

	var accounts []models.Account
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("hydrate profiles: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
	}
	profiles := make([]models.FriendShort, 0, len(accounts))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			profiles = append(profiles, a.ToShort(models.StatusRecommendation))
		}
	}
	return profiles, nil
}

// SearchFriends returns the accounts at the far end of accountID's edges with
// the given status that also match cond
func (r *PostgresFriendshipRepository) SearchFriends(ctx context.Context, accountID uuid.UUID, status models.StatusCode, cond friends.Condition) ([]models.FriendShort, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).Model(&models.Account{}).
		Joins("JOIN friends ON friends.requested_account_id = accounts.id").
		Where("friends.account_from_id = ? AND friends.status_code = ?", accountID, status).
		Where(cond.Expression()).
		Order("accounts.first_name, accounts.last_name").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("search friends of %s: %w", accountID, err)
	}

	profiles := make([]models.FriendShort, 0, len(accounts))
	for i := range accounts {
		profiles = append(profiles, accounts[i].ToShort(status))
	}
	return profiles, nil
}

// FriendAccounts returns the full accounts of accountID's live friends
func (r *PostgresFriendshipRepository) FriendAccounts(ctx context.Context, accountID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).Model(&models.Account{}).
		Joins("JOIN friends ON friends.requested_account_id = accounts.id").
		Where("friends.account_from_id = ? AND friends.status_code = ?", accountID, models.StatusFriend).
		Where("accounts.is_deleted = ?", false).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("friend accounts of %s: %w", accountID, err)
	}
	return accounts, nil
}
