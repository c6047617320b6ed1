package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
	apperrors "github.com/Fuku-x/connect-app/pkg/errors"
)

func setupTestDB(t *testing.T) {
	// One shared in-memory DB per test, so the pool's connections see the
	// same data but tests stay isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	database.DB = db
}

func createUser(t *testing.T, id, name string) models.User {
	user := models.User{ID: id, Name: name, Email: id + "@st.kobedenshi.ac.jp"}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", id, err)
	}
	return user
}

func TestResolveConversation_OrderIndependent(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	c1, err := ResolveConversation("alice", "bob")
	assert.NoError(t, err)

	c2, err := ResolveConversation("bob", "alice")
	assert.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)

	// Canonical order: smaller id first
	assert.Equal(t, "alice", c1.UserOneID)
	assert.Equal(t, "bob", c1.UserTwoID)

	// Repeated calls never create a second row
	var count int64
	database.DB.Model(&models.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveConversation_RejectsSelf(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")

	_, err := ResolveConversation("alice", "alice")
	assert.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestResolveConversation_RecoversFromDuplicateInsert(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	// Simulate a concurrent winner: the canonical row already exists before
	// our create path runs.
	existing := models.Conversation{UserOneID: "alice", UserTwoID: "bob"}
	assert.NoError(t, database.DB.Create(&existing).Error)

	conv, err := ResolveConversation("bob", "alice")
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, conv.ID)
}

func TestSendMessage_RejectsSelf(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")

	_, err := SendMessage("alice", "alice", "hi")
	assert.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestSendMessage_ContentBounds(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	_, err := SendMessage("alice", "bob", "   ")
	assert.Error(t, err, "whitespace-only content must be rejected")

	_, err = SendMessage("alice", "bob", strings.Repeat("x", 2001))
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Fields, "content")

	msg, err := SendMessage("alice", "bob", strings.Repeat("x", 2000))
	assert.NoError(t, err)
	assert.Len(t, msg.Content, 2000)
}

func TestSendMessage_UnknownReceiver(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")

	_, err := SendMessage("alice", "ghost", "hello?")
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestSendMessage_TouchesConversation(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	conv, err := ResolveConversation("alice", "bob")
	assert.NoError(t, err)

	// Age the conversation so the bump is observable.
	old := time.Now().Add(-time.Hour)
	database.DB.Model(&models.Conversation{}).Where("id = ?", conv.ID).Update("updated_at", old)

	msg, err := SendMessage("alice", "bob", "hello")
	assert.NoError(t, err)
	assert.Equal(t, conv.ID, msg.ConversationID)
	assert.Nil(t, msg.ReadAt)
	assert.Equal(t, "Alice", msg.Sender.Name)

	var fresh models.Conversation
	database.DB.First(&fresh, "id = ?", conv.ID)
	assert.True(t, fresh.UpdatedAt.After(old), "updated_at should move to the message time")
}

func TestUnreadAccounting(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	before, err := UnreadCount("bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), before)

	_, err = SendMessage("alice", "bob", "hi")
	assert.NoError(t, err)

	bobCount, _ := UnreadCount("bob")
	assert.Equal(t, int64(1), bobCount, "receiver gains exactly one unread")

	aliceCount, _ := UnreadCount("alice")
	assert.Equal(t, int64(0), aliceCount, "sender's count is unchanged")
}

func TestOpenConversation_MarksReadIdempotently(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	msg, err := SendMessage("alice", "bob", "hello bob")
	assert.NoError(t, err)

	detail, err := OpenConversation("bob", msg.ConversationID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", detail.OtherUser.ID)
	assert.Len(t, detail.Messages, 1)
	assert.NotNil(t, detail.Messages[0].ReadAt, "viewing stamps read_at")

	count, _ := UnreadCount("bob")
	assert.Equal(t, int64(0), count)

	firstReadAt := *detail.Messages[0].ReadAt

	// A second open changes nothing.
	again, err := OpenConversation("bob", msg.ConversationID)
	assert.NoError(t, err)
	assert.Equal(t, firstReadAt.Unix(), again.Messages[0].ReadAt.Unix())
}

func TestOpenConversation_SenderViewLeavesUnread(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	msg, err := SendMessage("alice", "bob", "hello")
	assert.NoError(t, err)

	// The sender opening the conversation must not consume bob's unread.
	_, err = OpenConversation("alice", msg.ConversationID)
	assert.NoError(t, err)

	count, _ := UnreadCount("bob")
	assert.Equal(t, int64(1), count)
}

func TestOpenConversation_AccessIsolation(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")
	createUser(t, "carol", "Carol")

	msg, err := SendMessage("alice", "bob", "private")
	assert.NoError(t, err)

	_, err = OpenConversation("carol", msg.ConversationID)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code, "non-participants get the same 404 as a missing id")

	_, err = OpenConversation("carol", "no-such-conversation")
	appErr, ok = err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestListConversations_Ordering(t *testing.T) {
	setupTestDB(t)
	createUser(t, "me", "Me")
	createUser(t, "old", "Old Friend")
	createUser(t, "new", "New Friend")

	m1, err := SendMessage("old", "me", "from a while ago")
	assert.NoError(t, err)
	database.DB.Model(&models.Message{}).Where("id = ?", m1.ID).
		Update("created_at", time.Now().Add(-2*time.Hour))

	_, err = SendMessage("new", "me", "just now")
	assert.NoError(t, err)

	summaries, err := ListConversations("me")
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)

	assert.Equal(t, "new", summaries[0].OtherUser.ID)
	assert.Equal(t, "old", summaries[1].OtherUser.ID)

	assert.Equal(t, int64(1), summaries[0].UnreadCount)
	assert.Equal(t, "just now", summaries[0].LatestMessage.Content)
}

func TestListConversations_IncludesEmptyStartedConversation(t *testing.T) {
	setupTestDB(t)
	createUser(t, "me", "Me")
	createUser(t, "quiet", "Quiet")

	_, err := ResolveConversation("me", "quiet")
	assert.NoError(t, err)

	summaries, err := ListConversations("me")
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].LatestMessage)
	assert.Equal(t, int64(0), summaries[0].UnreadCount)
}
