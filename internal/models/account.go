package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Account is a user profile together with its notification preferences.
// The recommendation and notification engines only ever read it.
type Account struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string         `json:"email" gorm:"uniqueIndex"`
	FirstName string         `json:"first_name" gorm:"index"`
	LastName  string         `json:"last_name"`
	City      string         `json:"city" gorm:"index"`
	Country   string         `json:"country" gorm:"index"`
	BirthDate datatypes.Date `json:"birth_date" gorm:"index"`
	IsOnline  bool           `json:"is_online" gorm:"default:false"`
	IsDeleted bool           `json:"is_deleted" gorm:"default:false;index"`

	// Notification preferences, one flag per notification category.
	EnablePost             bool `json:"enable_post" gorm:"default:true"`
	EnableLike             bool `json:"enable_like" gorm:"default:true"`
	EnableComment          bool `json:"enable_comment" gorm:"default:true"`
	EnableFriendRequest    bool `json:"enable_friend_request" gorm:"default:true"`
	EnableMessage          bool `json:"enable_message" gorm:"default:true"`
	EnableFriendBirthday   bool `json:"enable_friend_birthday" gorm:"default:true"`
	EnableSendEmailMessage bool `json:"enable_send_email_message" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Birthday returns the birth date as a time.Time, zero when unknown.
func (a *Account) Birthday() time.Time {
	return time.Time(a.BirthDate)
}

// ToShort converts an account into the short profile returned by friend lookups.
func (a *Account) ToShort(status StatusCode) FriendShort {
	return FriendShort{
		ID:         a.ID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		City:       a.City,
		Country:    a.Country,
		BirthDate:  a.Birthday(),
		IsOnline:   a.IsOnline,
		IsDeleted:  a.IsDeleted,
		StatusCode: status,
	}
}
