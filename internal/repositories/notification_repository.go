package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const notificationBatchSize = 500

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
	BirthdayAuthorsSentOn(ctx context.Context, day time.Time) ([]uuid.UUID, error)
	GetByReceiverID(ctx context.Context, receiverID uuid.UUID, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(ctx context.Context, receiverID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, receiverID, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, receiverID uuid.UUID) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// CreateNotifications stores every notification or none of them.
func (r *postgresNotificationRepository) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&notifications, notificationBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("create %d notifications: %w", len(notifications), err)
	}
	return nil
}

// BirthdayAuthorsSentOn returns the authors of FRIEND_BIRTHDAY notifications
// sent on the calendar day of day (UTC).
func (r *postgresNotificationRepository) BirthdayAuthorsSentOn(ctx context.Context, day time.Time) ([]uuid.UUID, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var authors []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Distinct().
		Where("type = ? AND send_time >= ? AND send_time < ?", models.NotificationFriendBirthday, start, start.AddDate(0, 0, 1)).
		Pluck("author_id", &authors).Error
	if err != nil {
		return nil, fmt.Errorf("birthday notifications sent on %s: %w", start.Format(time.DateOnly), err)
	}
	return authors, nil
}

func (r *postgresNotificationRepository) GetByReceiverID(ctx context.Context, receiverID uuid.UUID, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Notification{}).Where("receiver_id = ?", receiverID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	offset := (page - 1) * limit
	err := db.Where("receiver_id = ?", receiverID).
		Order("send_time DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = false", receiverID).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks one of the receiver's notifications as read.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, receiverID, notificationID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND receiver_id = ?", notificationID, receiverID).
		Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, receiverID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = false", receiverID).
		Update("is_read", true).Error
}
