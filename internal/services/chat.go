package services

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
	apperrors "github.com/Fuku-x/connect-app/pkg/errors"
)

// LatestMessage is the inbox preview of a conversation's newest message.
type LatestMessage struct {
	Content   string    `json:"content"`
	SenderID  string    `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationSummary is one inbox row.
type ConversationSummary struct {
	ID            string            `json:"id"`
	OtherUser     models.PublicUser `json:"other_user"`
	LatestMessage *LatestMessage    `json:"latest_message"`
	UnreadCount   int64             `json:"unread_count"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// MessageView is a message tagged with its sender's public identity.
type MessageView struct {
	ID             string            `json:"id"`
	ConversationID string            `json:"conversation_id"`
	SenderID       string            `json:"sender_id"`
	Content        string            `json:"content"`
	ReadAt         *time.Time        `json:"read_at"`
	CreatedAt      time.Time         `json:"created_at"`
	Sender         models.PublicUser `json:"sender"`
}

// ConversationDetail is the full view returned when a conversation is opened.
type ConversationDetail struct {
	ConversationID string            `json:"conversation_id"`
	OtherUser      models.PublicUser `json:"other_user"`
	Messages       []MessageView     `json:"messages"`
}

// canonicalPair orders two user ids so the same unordered pair always maps
// to the same (first, second) key.
func canonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// ResolveConversation returns the one conversation for the unordered pair
// {userA, userB}, creating it if it does not exist yet. The call is
// idempotent and order-independent: the pair is canonicalized before lookup,
// and a unique index on (user_one_id, user_two_id) guards creation. If a
// concurrent request wins the create race, the constraint violation is
// swallowed and the winner's row is fetched instead.
func ResolveConversation(userA, userB string) (*models.Conversation, error) {
	if userA == userB {
		return nil, apperrors.BadRequest("Cannot start a conversation with yourself")
	}

	first, second := canonicalPair(userA, userB)

	var conv models.Conversation
	err := database.DB.
		Where("user_one_id = ? AND user_two_id = ?", first, second).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	conv = models.Conversation{UserOneID: first, UserTwoID: second}
	createErr := database.DB.Create(&conv).Error
	if createErr == nil {
		return &conv, nil
	}

	// Most likely a unique-constraint race: another request created the pair
	// between our lookup and insert. Re-read before giving up.
	var existing models.Conversation
	if err := database.DB.
		Where("user_one_id = ? AND user_two_id = ?", first, second).
		First(&existing).Error; err == nil {
		return &existing, nil
	}

	return nil, createErr
}

// SendMessage appends a message to the pair's conversation, creating the
// conversation on first contact. The message insert and the conversation's
// updated_at bump happen in one transaction.
func SendMessage(senderID, receiverID, content string) (*MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{
			"content": "Message content is required",
		})
	}
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return nil, apperrors.Validation("Validation failed", map[string]string{
			"content": "Message content must be 2000 characters or less",
		})
	}
	if receiverID == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{
			"receiver_id": "Receiver is required",
		})
	}
	if senderID == receiverID {
		return nil, apperrors.BadRequest("Cannot send a message to yourself")
	}

	var receiver models.User
	if err := database.DB.First(&receiver, "id = ?", receiverID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	conv, err := ResolveConversation(senderID, receiverID)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Update("updated_at", msg.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}

	var sender models.User
	if err := database.DB.First(&sender, "id = ?", senderID).Error; err != nil {
		return nil, err
	}

	view := messageView(msg, sender)
	return &view, nil
}

// ListConversations returns the caller's inbox: every conversation they
// participate in, newest activity first. Conversations that were started but
// have no messages yet still appear, ordered by their updated_at.
func ListConversations(userID string) ([]ConversationSummary, error) {
	var convs []models.Conversation
	err := database.DB.
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Preload("UserOne").
		Preload("UserTwo").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		other := conv.UserTwo
		if conv.UserTwoID == userID {
			other = conv.UserOne
		}

		var latest *LatestMessage
		var last models.Message
		err := database.DB.
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			latest = &LatestMessage{
				Content:   last.Content,
				SenderID:  last.SenderID,
				CreatedAt: last.CreatedAt,
			}
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		var unread int64
		if err := database.DB.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id != ? AND read_at IS NULL", conv.ID, userID).
			Count(&unread).Error; err != nil {
			return nil, err
		}

		summaries = append(summaries, ConversationSummary{
			ID:            conv.ID,
			OtherUser:     other.Public(),
			LatestMessage: latest,
			UnreadCount:   unread,
			UpdatedAt:     conv.UpdatedAt,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaryActivity(summaries[i]).After(summaryActivity(summaries[j]))
	})

	return summaries, nil
}

func summaryActivity(s ConversationSummary) time.Time {
	if s.LatestMessage != nil {
		return s.LatestMessage.CreatedAt
	}
	return s.UpdatedAt
}

// OpenConversation returns a conversation's full message history for a
// participant, marking every unread message addressed to them as read before
// returning. Opening is the only path that stamps read_at; repeating it is a
// no-op. Non-participants get the same NotFound as a missing id.
func OpenConversation(userID, conversationID string) (*ConversationDetail, error) {
	var conv models.Conversation
	err := database.DB.
		Where("id = ? AND (user_one_id = ? OR user_two_id = ?)", conversationID, userID, userID).
		Preload("UserOne").
		Preload("UserTwo").
		First(&conv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Conversation not found")
		}
		return nil, err
	}

	// Read-on-view: stamp everything addressed to the caller in one batch.
	now := time.Now()
	if err := database.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND read_at IS NULL", conv.ID, userID).
		Update("read_at", now).Error; err != nil {
		return nil, err
	}

	var msgs []models.Message
	if err := database.DB.
		Where("conversation_id = ?", conv.ID).
		Order("created_at ASC").
		Preload("Sender").
		Find(&msgs).Error; err != nil {
		return nil, err
	}

	other := conv.UserTwo
	if conv.UserTwoID == userID {
		other = conv.UserOne
	}

	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, messageView(m, m.Sender))
	}

	return &ConversationDetail{
		ConversationID: conv.ID,
		OtherUser:      other.Public(),
		Messages:       views,
	}, nil
}

// UnreadCount counts unread messages addressed to the user across all of
// their conversations.
func UnreadCount(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.user_one_id = ? OR conversations.user_two_id = ?)", userID, userID).
		Where("messages.sender_id != ? AND messages.read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func messageView(m models.Message, sender models.User) MessageView {
	return MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
		Sender:         sender.Public(),
	}
}
