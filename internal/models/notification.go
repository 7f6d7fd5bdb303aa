package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the category of a notification and of the event that produced it.
type NotificationType string

const (
	NotificationPost             NotificationType = "POST"
	NotificationFriendRequest    NotificationType = "FRIEND_REQUEST"
	NotificationLike             NotificationType = "LIKE"
	NotificationMessage          NotificationType = "MESSAGE"
	NotificationPostComment      NotificationType = "POST_COMMENT"
	NotificationCommentComment   NotificationType = "COMMENT_COMMENT"
	NotificationSendEmailMessage NotificationType = "SEND_EMAIL_MESSAGE"
	NotificationFriendBirthday   NotificationType = "FRIEND_BIRTHDAY"
)

// Notification is a single message addressed to one receiver (PostgreSQL).
type Notification struct {
	ID         uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorID   uuid.UUID        `json:"author_id" gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID        `json:"receiver_id" gorm:"type:uuid;not null;index"`
	Type       NotificationType `json:"notification_type" gorm:"type:varchar(30);not null;index"`
	Content    string           `json:"content" gorm:"type:text"`
	SendTime   time.Time        `json:"send_time" gorm:"not null;index"`
	IsRead     bool             `json:"is_read" gorm:"default:false;index"`
}
