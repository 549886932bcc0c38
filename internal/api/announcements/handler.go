package announcements

import (
	"net/http"
	"time"

	"church-app/database"
	"church-app/internal/app/http/middleware"
	"church-app/internal/domain/access"
	"church-app/internal/domain/announcements"

	"github.com/gin-gonic/gin"
)

// GET /announcements/
func ListAnnouncements(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []announcements.Announcement
	if err := database.DB.
		Scopes(access.Scope(access.KindAnnouncements, user)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load announcements"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /announcements/:id
func GetAnnouncement(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var a announcements.Announcement
	if err := database.DB.
		Scopes(access.Scope(access.KindAnnouncements, user)).
		First(&a, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// POST /announcements/
func CreateAnnouncement(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindAnnouncements, access.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var body struct {
		Title     string     `json:"title" binding:"required"`
		Content   string     `json:"content" binding:"required"`
		IsActive  *bool      `json:"is_active"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	a := announcements.Announcement{
		Title:     body.Title,
		Content:   body.Content,
		AuthorID:  user.ID,
		IsActive:  isActive,
		ExpiresAt: body.ExpiresAt,
	}
	if err := database.DB.Create(&a).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save announcement"})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// PUT /announcements/:id
func UpdateAnnouncement(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindAnnouncements, access.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var a announcements.Announcement
	if err := database.DB.First(&a, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var body struct {
		Title     *string    `json:"title"`
		Content   *string    `json:"content"`
		IsActive  *bool      `json:"is_active"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Content != nil {
		updates["content"] = *body.Content
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if body.ExpiresAt != nil {
		updates["expires_at"] = *body.ExpiresAt
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&a).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
			return
		}
	}

	c.JSON(http.StatusOK, a)
}

// DELETE /announcements/:id
func DeleteAnnouncement(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindAnnouncements, access.ActionDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var a announcements.Announcement
	if err := database.DB.First(&a, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	if err := database.DB.Delete(&a).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
