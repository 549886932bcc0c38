package announcements

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"church-app/database"
	"church-app/internal/domain/announcements"
	"church-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&users.User{}, &announcements.Announcement{}))
	database.DB = db
}

var userSeq int

func seedUser(t *testing.T, role string, staff bool) *users.User {
	t.Helper()
	userSeq++
	u := &users.User{
		Name:    role,
		Email:   fmt.Sprintf("user%d@example.com", userSeq),
		Role:    role,
		IsStaff: staff,
	}
	require.NoError(t, database.DB.Create(u).Error)
	return u
}

func newRouter(u *users.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if u != nil {
			c.Set("user_id", u.ID)
			c.Set("email", u.Email)
			c.Set("role", u.Role)
		}
		c.Next()
	})
	r.GET("/announcements/", ListAnnouncements)
	r.GET("/announcements/:id", GetAnnouncement)
	r.POST("/announcements/", CreateAnnouncement)
	r.PUT("/announcements/:id", UpdateAnnouncement)
	r.DELETE("/announcements/:id", DeleteAnnouncement)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListAnnouncementsMemberVisibility(t *testing.T) {
	setupTestDB(t)
	staff := seedUser(t, users.RolePastor, true)
	member := seedUser(t, users.RoleMember, false)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	require.NoError(t, database.DB.Create(&[]announcements.Announcement{
		{Title: "active", Content: "c", AuthorID: staff.ID, IsActive: true},
		{Title: "future-expiry", Content: "c", AuthorID: staff.ID, IsActive: true, ExpiresAt: &future},
		{Title: "expired", Content: "c", AuthorID: staff.ID, IsActive: true, ExpiresAt: &past},
		{Title: "inactive", Content: "c", AuthorID: staff.ID, IsActive: false},
	}).Error)

	w := doJSON(t, newRouter(member), http.MethodGet, "/announcements/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []announcements.Announcement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	titles := []string{list[0].Title, list[1].Title}
	assert.ElementsMatch(t, []string{"active", "future-expiry"}, titles)

	// staff manage the full set, expired and inactive included
	w = doJSON(t, newRouter(staff), http.MethodGet, "/announcements/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)
}

func TestGetAnnouncementScoped(t *testing.T) {
	setupTestDB(t)
	staff := seedUser(t, users.RolePastor, true)
	member := seedUser(t, users.RoleMember, false)

	a := announcements.Announcement{Title: "draft", Content: "c", AuthorID: staff.ID, IsActive: false}
	require.NoError(t, database.DB.Create(&a).Error)
	path := fmt.Sprintf("/announcements/%d", a.ID)

	w := doJSON(t, newRouter(member), http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, newRouter(staff), http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAnnouncementStaffOnly(t *testing.T) {
	setupTestDB(t)
	staff := seedUser(t, users.RolePastor, true)
	member := seedUser(t, users.RoleMember, false)

	w := doJSON(t, newRouter(member), http.MethodPost, "/announcements/", map[string]interface{}{
		"title":   "Picnic",
		"content": "Saturday at noon",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, newRouter(staff), http.MethodPost, "/announcements/", map[string]interface{}{
		"title":   "Picnic",
		"content": "Saturday at noon",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var a announcements.Announcement
	require.NoError(t, database.DB.First(&a).Error)
	assert.True(t, a.IsActive)
	assert.Equal(t, staff.ID, a.AuthorID)
}

func TestUpdateAnnouncement(t *testing.T) {
	setupTestDB(t)
	staff := seedUser(t, users.RolePastor, true)
	member := seedUser(t, users.RoleMember, false)

	a := announcements.Announcement{Title: "Picnic", Content: "c", AuthorID: staff.ID, IsActive: true}
	require.NoError(t, database.DB.Create(&a).Error)
	path := fmt.Sprintf("/announcements/%d", a.ID)

	w := doJSON(t, newRouter(member), http.MethodPut, path, map[string]interface{}{"is_active": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, newRouter(staff), http.MethodPut, path, map[string]interface{}{
		"title":     "Picnic moved",
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var saved announcements.Announcement
	require.NoError(t, database.DB.First(&saved, a.ID).Error)
	assert.Equal(t, "Picnic moved", saved.Title)
	assert.False(t, saved.IsActive)
	assert.Equal(t, "c", saved.Content)
}

func TestDeleteAnnouncement(t *testing.T) {
	setupTestDB(t)
	staff := seedUser(t, users.RolePastor, true)

	a := announcements.Announcement{Title: "old", Content: "c", AuthorID: staff.ID}
	require.NoError(t, database.DB.Create(&a).Error)

	w := doJSON(t, newRouter(staff), http.MethodDelete, fmt.Sprintf("/announcements/%d", a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved announcements.Announcement
	assert.Error(t, database.DB.First(&saved, a.ID).Error)

	w = doJSON(t, newRouter(staff), http.MethodDelete, "/announcements/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
