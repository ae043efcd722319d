package models

import (
	"time"
)

// QueueEntry is one participant waiting for a match. JoinedAt is the
// ordering key of the waiting line; the ready-check coordinator rewrites it
// to move its confirmed ten to the front.
type QueueEntry struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   string    `gorm:"uniqueIndex;type:varchar(32);not null"`
	JoinedAt time.Time `gorm:"not null;index"`
}

func (QueueEntry) TableName() string {
	return "queue"
}
