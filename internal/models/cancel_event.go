package models

import (
	"time"
)

// CancelEvent records one missed ready-check (or a manual adjustment).
// The cancellation board aggregates sum(weight) per user.
type CancelEvent struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"index;type:varchar(32);not null"`
	RcID      string    `gorm:"type:varchar(36)"`
	Reason    string    `gorm:"type:varchar(32);not null"`
	Weight    int       `gorm:"default:1;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Cancel event reasons
const (
	CancelReasonReadyExpired = "ready-check-expired"
	CancelReasonManualAdjust = "manual-adjust"
	CancelReasonManualSet    = "manual-set"
)

func (CancelEvent) TableName() string {
	return "cancel_events"
}
