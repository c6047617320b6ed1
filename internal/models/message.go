package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/pkg/utils"
)

// MaxMessageLength bounds message content, counted in characters after
// trimming.
const MaxMessageLength = 2000

// Message belongs to a conversation. ReadAt is null until the recipient
// opens the conversation; the transition is one-way.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	ConversationID string `gorm:"index;not null" json:"conversation_id"`
	SenderID       string `gorm:"index;not null" json:"sender_id"`
	Sender         User   `gorm:"foreignKey:SenderID" json:"-"`

	Content string     `gorm:"size:2000;not null" json:"content"`
	ReadAt  *time.Time `json:"read_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateID()
	}
	return nil
}
