package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
	"github.com/Fuku-x/connect-app/internal/services"
)

// GetConversations returns the caller's inbox, most recently active first.
// The frontend polls this on an interval for "live" updates.
func GetConversations(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	summaries, err := services.ListConversations(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// GetConversation opens one conversation: unread messages addressed to the
// caller are marked read as a side effect of the view.
func GetConversation(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	conversationID := c.Param("id")

	detail, err := services.OpenConversation(userID, conversationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

type SendMessageInput struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func SendMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiver_id and content are required"})
		return
	}

	msg, err := services.SendMessage(userID, input.ReceiverID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

type StartConversationInput struct {
	UserID string `json:"user_id" binding:"required"`
}

// StartConversation resolves (or lazily creates) the conversation with
// another user without sending a message.
func StartConversation(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input StartConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var other models.User
	if err := database.DB.First(&other, "id = ?", input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	conv, err := services.ResolveConversation(userID, input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conv.ID,
		"other_user":      other.Public(),
	})
}

// GetUnreadCount returns the total unread messages addressed to the caller,
// polled by the frontend for the header badge.
func GetUnreadCount(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	count, err := services.UnreadCount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
