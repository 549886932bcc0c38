package chat

import (
	"net/http"
	"strings"

	"church-app/database"
	"church-app/internal/app/http/middleware"
	"church-app/internal/domain/access"
	"church-app/internal/domain/chat"
	"church-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GET /messages/
// Optional filters compose conjunctively on top of the visibility scope:
// ?type=, ?donation=, ?appointment=, ?is_read=true|false.
func ListMessages(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := database.DB.
		Scopes(access.Scope(access.KindMessages, user)).
		Order("created_at ASC")

	if msgType := c.Query("type"); msgType != "" {
		query = query.Where("message_type = ?", msgType)
	}
	if donationID := c.Query("donation"); donationID != "" {
		query = query.Where("donation_id = ?", donationID)
	}
	if appointmentID := c.Query("appointment"); appointmentID != "" {
		query = query.Where("appointment_id = ?", appointmentID)
	}
	if isRead := c.Query("is_read"); isRead != "" {
		query = query.Where("is_read = ?", strings.EqualFold(isRead, "true"))
	}

	var list []chat.Message
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /messages/:id
func GetMessage(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var m chat.Message
	if err := database.DB.
		Scopes(access.Scope(access.KindMessages, user)).
		First(&m, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// POST /messages/
// The sender is always the authenticated actor, never taken from the body.
func CreateMessage(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindMessages, access.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var body struct {
		Receiver      uint   `json:"receiver" binding:"required"`
		MessageType   string `json:"message_type"`
		AppointmentID *uint  `json:"appointment"`
		DonationID    *uint  `json:"donation"`
		Content       string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msgType := chat.MessageType(body.MessageType)
	if body.MessageType == "" {
		msgType = chat.TypeGeneral
	}
	if !chat.ValidMessageType(msgType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}

	var receiver users.User
	if err := database.DB.First(&receiver, body.Receiver).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown receiver"})
		return
	}

	m := chat.Message{
		SenderID:      user.ID,
		ReceiverID:    receiver.ID,
		MessageType:   msgType,
		AppointmentID: body.AppointmentID,
		DonationID:    body.DonationID,
		Content:       body.Content,
	}
	if err := database.DB.Create(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// PATCH /messages/:id
// Only the read flag is mutable after creation.
func UpdateMessage(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var m chat.Message
	if err := database.DB.
		Scopes(access.Scope(access.KindMessages, user)).
		First(&m, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	var body struct {
		IsRead *bool `json:"is_read"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IsRead == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_read is required"})
		return
	}

	if err := database.DB.Model(&m).Update("is_read", *body.IsRead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// DELETE /messages/:id
func DeleteMessage(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var m chat.Message
	if err := database.DB.
		Scopes(access.Scope(access.KindMessages, user)).
		First(&m, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if err := database.DB.Delete(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
