package models

import (
	"time"
)

// RatingHistory is an append-only ledger of applied rating deltas.
// Reversal flips Reverted instead of deleting rows, preserving the audit
// trail.
type RatingHistory struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     string    `gorm:"index;type:varchar(32);not null"`
	MatchID    int       `gorm:"index;not null"`
	OldRating  int       `gorm:"not null"`
	NewRating  int       `gorm:"not null"`
	Delta      int       `gorm:"not null"`
	Reverted   bool      `gorm:"default:false;index"`
	RevertedAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (RatingHistory) TableName() string {
	return "rating_history"
}
