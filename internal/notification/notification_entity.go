package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// EventID dedupes at-least-once delivery: a redelivered decision event
	// hits the unique index instead of creating a second notification.
	EventID string `gorm:"type:varchar(64);not null;uniqueIndex:uq_notifications_event_id"`

	Title string `gorm:"type:varchar(200);not null"`
	Body  string `gorm:"type:text;not null"`

	ReadAt    *time.Time
	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
