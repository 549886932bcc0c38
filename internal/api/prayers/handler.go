package prayers

import (
	"fmt"
	"log"
	"net/http"

	"church-app/database"
	"church-app/internal/app/http/middleware"
	"church-app/internal/domain/access"
	"church-app/internal/domain/prayers"
	"church-app/internal/infra/mail"

	"github.com/gin-gonic/gin"
)

// POST /prayers/
// Open to guests. The confirmation email is best-effort: a failed send is
// logged and never fails the request.
func CreatePrayerRequest(c *gin.Context) {
	var body struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prayer := prayers.PrayerRequest{
		Title:    body.Title,
		Content:  body.Content,
		Email:    body.Email,
		FullName: body.FullName,
	}
	if user := middleware.OptionalUser(c); user != nil {
		prayer.UserID = &user.ID
		prayer.User = user
	}

	if err := database.DB.Create(&prayer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prayer request"})
		return
	}

	if email := prayer.ContactEmail(); email != "" {
		sendConfirmationEmail(&prayer, email)
	}

	c.JSON(http.StatusCreated, prayer)
}

func sendConfirmationEmail(prayer *prayers.PrayerRequest, recipient string) {
	subject := "🙏 Your prayer request has been received"
	body := fmt.Sprintf(`Hello %s,

We have received your prayer request: "%s"

Our intercession team takes every request seriously and will be praying
for your situation.

"Do not be anxious about anything, but in every situation, by prayer and
petition, with thanksgiving, present your requests to God."
- Philippians 4:6

May the peace of God be with you.
`, prayer.ContactName(), prayer.Title)

	if err := mail.Send(recipient, subject, body); err != nil {
		log.Printf("prayer confirmation email to %s failed: %v", recipient, err)
	}
}

// GET /prayers/
func ListPrayerRequests(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []prayers.PrayerRequest
	if err := database.DB.
		Scopes(access.Scope(access.KindPrayers, user)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load prayer requests"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /prayers/:id
func GetPrayerRequest(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var prayer prayers.PrayerRequest
	if err := database.DB.
		Scopes(access.Scope(access.KindPrayers, user)).
		First(&prayer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	c.JSON(http.StatusOK, prayer)
}

// PUT /prayers/:id
func UpdatePrayerRequest(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindPrayers, access.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var prayer prayers.PrayerRequest
	if err := database.DB.First(&prayer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	var body struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
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
	if len(updates) > 0 {
		if err := database.DB.Model(&prayer).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer request"})
			return
		}
	}

	c.JSON(http.StatusOK, prayer)
}

// DELETE /prayers/:id
func DeletePrayerRequest(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindPrayers, access.ActionDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var prayer prayers.PrayerRequest
	if err := database.DB.First(&prayer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	if err := database.DB.Delete(&prayer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted"})
}
