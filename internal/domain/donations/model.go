package donations

import (
	"time"

	"church-app/internal/domain/users"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// ValidStatus reports membership in the closed status enumeration.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type Donation struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"user_id"`
	User   *users.User `json:"-"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`

	// External payment reference. Unique at the storage layer so two
	// concurrent creates/declares can never collide silently.
	PayPalPaymentID string  `gorm:"column:paypal_payment_id;not null;uniqueIndex:idx_donations_paypal_payment_id" json:"paypal_payment_id"`
	PayPalPayerID   *string `gorm:"column:paypal_payer_id" json:"paypal_payer_id"`

	Status      Status `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`
	IsArchived  bool   `gorm:"default:false;index" json:"is_archived"`

	Project       string `gorm:"default:'general'" json:"project"`
	PaymentMethod string `gorm:"type:varchar(30);default:'paypal'" json:"payment_method"`
	Notes         string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
