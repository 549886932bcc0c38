package lives

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"church-app/database"
	"church-app/internal/app/http/middleware"
	"church-app/internal/domain/access"
	"church-app/internal/domain/lives"
	"church-app/internal/infra/cache"

	"github.com/gin-gonic/gin"
)

const activeCacheKey = "lives:active"

// Placeholder ingest infrastructure until the real IVS integration lands.
const (
	demoPlaybackURL    = "https://fcc3ddae59ed.us-west-2.playback.live-video.net/api/video/v1/demo.m3u8"
	demoIngestEndpoint = "rtmps://fcc3ddae59ed.global-contribute.live-video.net:443/app/"
)

func generateStreamKey(id uint) string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return fmt.Sprintf("sk_church_%d_%s", id, hex.EncodeToString(bytes))
}

// GET /lives/
func ListLiveStreams(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []lives.LiveStream
	if err := database.DB.
		Scopes(access.Scope(access.KindLives, user)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load live streams"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /lives/:id
func GetLiveStream(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var live lives.LiveStream
	if err := database.DB.
		Scopes(access.Scope(access.KindLives, user)).
		First(&live, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Live stream not found"})
		return
	}

	c.JSON(http.StatusOK, live)
}

// POST /lives/
func CreateLiveStream(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindLives, access.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var body struct {
		Title          string     `json:"title" binding:"required"`
		Description    string     `json:"description"`
		ScheduledStart *time.Time `json:"scheduled_start"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	live := lives.LiveStream{
		Title:          body.Title,
		Description:    body.Description,
		PastorID:       user.ID,
		Status:         lives.StatusPlanned,
		ScheduledStart: body.ScheduledStart,
	}
	if err := database.DB.Create(&live).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save live stream"})
		return
	}

	c.JSON(http.StatusCreated, live)
}

// PUT /lives/:id
func UpdateLiveStream(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindLives, access.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var live lives.LiveStream
	if err := database.DB.First(&live, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Live stream not found"})
		return
	}

	var body struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		ScheduledStart *time.Time `json:"scheduled_start"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.ScheduledStart != nil {
		updates["scheduled_start"] = *body.ScheduledStart
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&live).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update live stream"})
			return
		}
	}

	c.JSON(http.StatusOK, live)
}

// DELETE /lives/:id
func DeleteLiveStream(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindLives, access.ActionDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var live lives.LiveStream
	if err := database.DB.First(&live, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Live stream not found"})
		return
	}

	if err := database.DB.Delete(&live).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete live stream"})
		return
	}

	cache.Del(c.Request.Context(), activeCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": "Live stream deleted"})
}

// POST /lives/:id/start_stream
// Only the hosting pastor or an admin may start. Credentials are
// provisioned once, on the first start, and never regenerated after.
func StartStream(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var live lives.LiveStream
	if err := database.DB.First(&live, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Live stream not found"})
		return
	}

	if live.PastorID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     lives.StatusLive,
		"started_at": now,
	}
	if !live.Provisioned() {
		live.StreamKey = generateStreamKey(live.ID)
		live.PlaybackURL = demoPlaybackURL
		live.IngestEndpoint = demoIngestEndpoint
		updates["stream_key"] = live.StreamKey
		updates["playback_url"] = live.PlaybackURL
		updates["ingest_endpoint"] = live.IngestEndpoint
	}

	if err := database.DB.Model(&live).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start stream"})
		return
	}
	live.Status = lives.StatusLive
	live.StartedAt = &now

	cache.Del(c.Request.Context(), activeCacheKey)
	c.JSON(http.StatusOK, live)
}

// POST /lives/:id/stop_stream
func StopStream(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var live lives.LiveStream
	if err := database.DB.First(&live, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Live stream not found"})
		return
	}

	if live.PastorID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	now := time.Now()
	if err := database.DB.Model(&live).Updates(map[string]interface{}{
		"status":   lives.StatusEnded,
		"ended_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop stream"})
		return
	}
	live.Status = lives.StatusEnded
	live.EndedAt = &now

	cache.Del(c.Request.Context(), activeCacheKey)
	c.JSON(http.StatusOK, live)
}

// GET /lives/active
// Public. Returns the most recent LIVE stream or 204 when nothing is on
// air. The answer is cached briefly since this is the hot path during
// services.
func ActiveLiveStream(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cache.Get(ctx, activeCacheKey); ok {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	var live lives.LiveStream
	err := database.DB.
		Where("status = ?", lives.StatusLive).
		Order("created_at DESC").
		First(&live).Error
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if payload, err := json.Marshal(live); err == nil {
		cache.Set(ctx, activeCacheKey, string(payload), 30*time.Second)
	}

	c.JSON(http.StatusOK, live)
}
