package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/pkg/utils"
)

// Conversation is the single row for an unordered pair of users. The pair is
// stored in canonical order (UserOneID < UserTwoID) and guarded by a unique
// index, so a pair can never own two conversations regardless of which side
// starts it. UpdatedAt is bumped on every message and drives inbox ordering
// for conversations that have no messages yet.
type Conversation struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserOneID string `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"user_one_id"`
	UserTwoID string `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"user_two_id"`

	UserOne User `gorm:"foreignKey:UserOneID" json:"-"`
	UserTwo User `gorm:"foreignKey:UserTwoID" json:"-"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateID()
	}
	return nil
}

// HasParticipant reports whether the user is one of the two parties.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.UserOneID == userID || c.UserTwoID == userID
}

// OtherUserID returns the participant that is not userID.
func (c *Conversation) OtherUserID(userID string) string {
	if c.UserOneID == userID {
		return c.UserTwoID
	}
	return c.UserOneID
}
