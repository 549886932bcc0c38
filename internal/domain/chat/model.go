package chat

import (
	"time"

	"church-app/internal/domain/donations"
	"church-app/internal/domain/users"
)

type MessageType string

const (
	TypeGeneral       MessageType = "GENERAL"
	TypeAppointment   MessageType = "APPOINTMENT"
	TypeDonationIssue MessageType = "DONATION_ISSUE"
	TypeSupport       MessageType = "SUPPORT"
)

func ValidMessageType(t MessageType) bool {
	switch t {
	case TypeGeneral, TypeAppointment, TypeDonationIssue, TypeSupport:
		return true
	}
	return false
}

// Message is a direct message between a pastor/admin and a member,
// optionally tied to an appointment or a donation.
type Message struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SenderID   uint `gorm:"index;not null" json:"sender"`
	Sender     *users.User `json:"-"`
	ReceiverID uint `gorm:"index;not null" json:"receiver"`
	Receiver   *users.User `json:"-"`

	MessageType MessageType `gorm:"type:varchar(20);not null;default:'GENERAL';index" json:"message_type"`

	// Appointments live outside this service; only the reference is kept.
	AppointmentID *uint                `gorm:"index" json:"appointment"`
	DonationID    *uint                `gorm:"index" json:"donation"`
	Donation      *donations.Donation  `json:"-"`

	Content   string    `gorm:"type:text;not null" json:"content"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"timestamp"`
}
