package prayers

import (
	"time"

	"church-app/internal/domain/users"
)

// PrayerRequest may be filed by a guest, in which case UserID is nil and
// the contact fields are all we know about the requester.
type PrayerRequest struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"user"`
	User   *users.User `json:"-"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	Email    string `json:"email"`
	FullName string `json:"full_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactEmail picks the address a confirmation should go to, if any.
func (p *PrayerRequest) ContactEmail() string {
	if p.Email != "" {
		return p.Email
	}
	if p.User != nil {
		return p.User.Email
	}
	return ""
}

// ContactName picks the best display name for the requester.
func (p *PrayerRequest) ContactName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.User != nil {
		return p.User.FullName()
	}
	return "Bien-aimé(e)"
}
