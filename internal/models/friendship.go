package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusCode is the state of a directed relationship between two accounts.
type StatusCode string

const (
	StatusNone           StatusCode = "NONE"
	StatusFriend         StatusCode = "FRIEND"
	StatusRequestTo      StatusCode = "REQUEST_TO"
	StatusRequestFrom    StatusCode = "REQUEST_FROM"
	StatusBlocked        StatusCode = "BLOCKED"
	StatusDeclined       StatusCode = "DECLINED"
	StatusSubscribed     StatusCode = "SUBSCRIBED"
	StatusWatching       StatusCode = "WATCHING"
	StatusRejecting      StatusCode = "REJECTING"
	StatusRecommendation StatusCode = "RECOMMENDATION"
)

// Valid reports whether s is one of the known status codes.
func (s StatusCode) Valid() bool {
	switch s {
	case StatusNone, StatusFriend, StatusRequestTo, StatusRequestFrom, StatusBlocked,
		StatusDeclined, StatusSubscribed, StatusWatching, StatusRejecting, StatusRecommendation:
		return true
	}
	return false
}

// Friendship is one directed edge of the social graph. An accepted friendship
// is stored as two FRIEND rows, one per direction; only FRIEND rows count as
// graph edges for recommendations.
type Friendship struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StatusCode         StatusCode `json:"status_code" gorm:"type:varchar(20);not null;default:'NONE';index"`
	AccountFromID      uuid.UUID  `json:"account_from_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_friends_pair"`
	RequestedAccountID uuid.UUID  `json:"requested_account_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_friends_pair"`
	PreviousStatus     StatusCode `json:"previous_status" gorm:"type:varchar(20)"`
	Rating             int16      `json:"rating" gorm:"default:0"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName keeps the historical table name of the friends graph.
func (Friendship) TableName() string {
	return "friends"
}

// FriendShort is the hydrated profile returned by recommendations and friend search.
type FriendShort struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	City       string     `json:"city"`
	Country    string     `json:"country"`
	BirthDate  time.Time  `json:"birth_date"`
	IsOnline   bool       `json:"is_online"`
	IsDeleted  bool       `json:"is_deleted"`
	StatusCode StatusCode `json:"status_code"`
}
