package users

import (
	"strings"
	"time"
)

const (
	RoleMember    = "MEMBER"
	RolePastor    = "PASTOR"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Tel          string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`

	Role        string `gorm:"type:varchar(20);not null;default:'MEMBER'"`
	IsStaff     bool   `gorm:"default:false"`
	IsSuperuser bool   `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds full administrative rights,
// either through the ADMIN role or the superuser flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) FullName() string {
	full := strings.TrimSpace(u.Name + " " + u.Lastname)
	if full == "" {
		return u.Email
	}
	return full
}

// Greeting builds the salutation used in outgoing emails, varying with
// the recipient's role.
func (u *User) Greeting() string {
	switch u.Role {
	case RolePastor:
		return "Bonjour Pasteur " + u.FullName() + ","
	case RoleAdmin:
		return "Bonjour Administrateur " + u.FullName() + ","
	case RoleModerator:
		return "Bonjour Modérateur " + u.FullName() + ","
	default:
		return "Bonjour Frère/Sœur " + u.FullName() + ","
	}
}

type VerificationToken struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"type:varchar(30);not null;default:'verify'"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
