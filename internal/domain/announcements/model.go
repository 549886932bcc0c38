package announcements

import (
	"time"

	"church-app/internal/domain/users"
)

type Announcement struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"index" json:"author"`
	Author   *users.User `json:"-"`

	// No column default: false must round-trip as false, so the create
	// handler sets the value explicitly instead.
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
