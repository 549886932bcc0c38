package lives

import (
	"time"

	"church-app/internal/domain/users"
)

type Status string

const (
	StatusPlanned Status = "PLANNED"
	StatusLive    Status = "LIVE"
	StatusEnded   Status = "ENDED"
)

type LiveStream struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	PastorID    uint   `gorm:"index;not null" json:"pastor"`
	Pastor      *users.User `json:"-"`

	Status Status `gorm:"type:varchar(20);not null;default:'PLANNED';index" json:"status"`

	// Provisioned lazily on first start, then never overwritten.
	StreamKey      string `json:"stream_key"`
	PlaybackURL    string `gorm:"type:varchar(512)" json:"playback_url"`
	IngestEndpoint string `gorm:"type:varchar(512)" json:"ingest_endpoint"`

	ScheduledStart *time.Time `json:"scheduled_start"`
	StartedAt      *time.Time `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Provisioned reports whether stream credentials were already assigned.
func (l *LiveStream) Provisioned() bool {
	return l.StreamKey != ""
}
