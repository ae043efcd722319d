package models

import (
	"time"
)

// Vote records a captain's result opinion for audit. The authoritative
// copy used for agreement checks lives on the match row itself.
type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	MatchID   int       `gorm:"index:idx_vote_once,unique;not null"`
	UserID    string    `gorm:"index:idx_vote_once,unique;type:varchar(32);not null"`
	Choice    string    `gorm:"type:varchar(1);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Vote) TableName() string {
	return "votes"
}
