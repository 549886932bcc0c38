package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"church-app/database"
	"church-app/internal/domain/chat"
	"church-app/internal/domain/donations"
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

	require.NoError(t, db.AutoMigrate(&users.User{}, &donations.Donation{}, &chat.Message{}))
	database.DB = db
}

var userSeq int

func seedUser(t *testing.T, role string) *users.User {
	t.Helper()
	userSeq++
	u := &users.User{
		Name:  role,
		Email: fmt.Sprintf("user%d@example.com", userSeq),
		Role:  role,
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
	r.GET("/messages/", ListMessages)
	r.GET("/messages/:id", GetMessage)
	r.POST("/messages/", CreateMessage)
	r.PATCH("/messages/:id", UpdateMessage)
	r.DELETE("/messages/:id", DeleteMessage)
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

func listMessages(t *testing.T, r *gin.Engine, path string) []chat.Message {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []chat.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

func TestCreateMessageSenderIsActor(t *testing.T) {
	setupTestDB(t)
	member := seedUser(t, users.RoleMember)
	pastorUser := seedUser(t, users.RolePastor)

	// the sender in the body is ignored: the actor always signs the message
	w := doJSON(t, newRouter(member), http.MethodPost, "/messages/", map[string]interface{}{
		"sender":   pastorUser.ID,
		"receiver": pastorUser.ID,
		"content":  "Could we meet after the service?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var m chat.Message
	require.NoError(t, database.DB.First(&m).Error)
	assert.Equal(t, member.ID, m.SenderID)
	assert.Equal(t, pastorUser.ID, m.ReceiverID)
	assert.Equal(t, chat.TypeGeneral, m.MessageType)
	assert.False(t, m.IsRead)
}

func TestCreateMessageValidation(t *testing.T) {
	setupTestDB(t)
	member := seedUser(t, users.RoleMember)
	pastorUser := seedUser(t, users.RolePastor)
	r := newRouter(member)

	// unknown receiver
	w := doJSON(t, r, http.MethodPost, "/messages/", map[string]interface{}{
		"receiver": 9999,
		"content":  "hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// invalid type
	w = doJSON(t, r, http.MethodPost, "/messages/", map[string]interface{}{
		"receiver":     pastorUser.ID,
		"message_type": "SHOUTING",
		"content":      "hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing content
	w = doJSON(t, r, http.MethodPost, "/messages/", map[string]interface{}{
		"receiver": pastorUser.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&chat.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestListMessagesScoped(t *testing.T) {
	setupTestDB(t)
	alice := seedUser(t, users.RoleMember)
	bob := seedUser(t, users.RoleMember)
	carol := seedUser(t, users.RoleMember)
	adminUser := seedUser(t, users.RoleAdmin)

	require.NoError(t, database.DB.Create(&[]chat.Message{
		{SenderID: alice.ID, ReceiverID: bob.ID, MessageType: chat.TypeGeneral, Content: "a->b"},
		{SenderID: bob.ID, ReceiverID: alice.ID, MessageType: chat.TypeGeneral, Content: "b->a"},
		{SenderID: bob.ID, ReceiverID: carol.ID, MessageType: chat.TypeGeneral, Content: "b->c"},
	}).Error)

	list := listMessages(t, newRouter(alice), "/messages/")
	require.Len(t, list, 2)
	for _, m := range list {
		assert.True(t, m.SenderID == alice.ID || m.ReceiverID == alice.ID)
	}

	assert.Len(t, listMessages(t, newRouter(adminUser), "/messages/"), 3)
}

func TestListMessagesFilters(t *testing.T) {
	setupTestDB(t)
	member := seedUser(t, users.RoleMember)
	pastorUser := seedUser(t, users.RolePastor)

	donationRef := uint(42)
	require.NoError(t, database.DB.Create(&[]chat.Message{
		{SenderID: member.ID, ReceiverID: pastorUser.ID, MessageType: chat.TypeGeneral, Content: "hi"},
		{SenderID: member.ID, ReceiverID: pastorUser.ID, MessageType: chat.TypeDonationIssue, DonationID: &donationRef, Content: "receipt?"},
		{SenderID: pastorUser.ID, ReceiverID: member.ID, MessageType: chat.TypeDonationIssue, DonationID: &donationRef, Content: "sent", IsRead: true},
	}).Error)

	r := newRouter(member)

	list := listMessages(t, r, "/messages/?type=DONATION_ISSUE")
	assert.Len(t, list, 2)

	list = listMessages(t, r, "/messages/?type=DONATION_ISSUE&is_read=false")
	require.Len(t, list, 1)
	assert.Equal(t, "receipt?", list[0].Content)

	list = listMessages(t, r, "/messages/?donation=42")
	assert.Len(t, list, 2)

	list = listMessages(t, r, "/messages/?donation=7")
	assert.Empty(t, list)
}

func TestUpdateMessageReadFlag(t *testing.T) {
	setupTestDB(t)
	member := seedUser(t, users.RoleMember)
	pastorUser := seedUser(t, users.RolePastor)
	outsider := seedUser(t, users.RoleMember)

	m := chat.Message{SenderID: pastorUser.ID, ReceiverID: member.ID, MessageType: chat.TypeGeneral, Content: "welcome"}
	require.NoError(t, database.DB.Create(&m).Error)
	path := fmt.Sprintf("/messages/%d", m.ID)

	// not a participant: the message does not exist for them
	w := doJSON(t, newRouter(outsider), http.MethodPatch, path, map[string]interface{}{"is_read": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, newRouter(member), http.MethodPatch, path, map[string]interface{}{"is_read": true})
	require.Equal(t, http.StatusOK, w.Code)

	var saved chat.Message
	require.NoError(t, database.DB.First(&saved, m.ID).Error)
	assert.True(t, saved.IsRead)

	// only the read flag is mutable
	w = doJSON(t, newRouter(member), http.MethodPatch, path, map[string]interface{}{"content": "edited"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, database.DB.First(&saved, m.ID).Error)
	assert.Equal(t, "welcome", saved.Content)
}

func TestDeleteMessageScoped(t *testing.T) {
	setupTestDB(t)
	member := seedUser(t, users.RoleMember)
	pastorUser := seedUser(t, users.RolePastor)
	outsider := seedUser(t, users.RoleMember)

	m := chat.Message{SenderID: member.ID, ReceiverID: pastorUser.ID, MessageType: chat.TypeGeneral, Content: "ping"}
	require.NoError(t, database.DB.Create(&m).Error)
	path := fmt.Sprintf("/messages/%d", m.ID)

	w := doJSON(t, newRouter(outsider), http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, newRouter(member), http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved chat.Message
	assert.Error(t, database.DB.First(&saved, m.ID).Error)
}
