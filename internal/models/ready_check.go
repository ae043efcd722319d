package models

import (
	"time"
)

type ReadyCheck struct {
	ID              uint       `gorm:"primaryKey"`
	RcID            string     `gorm:"uniqueIndex;type:varchar(36);not null"`
	Status          string     `gorm:"type:varchar(20);default:'pending';index"`
	StatusMessageID string     `gorm:"type:varchar(32)"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	Deadline        time.Time  `gorm:"not null"`
	EndedAt         *time.Time `gorm:"index"`
}

// Ready-check status constants
const (
	ReadyCheckPending  = "pending"
	ReadyCheckComplete = "complete"
	ReadyCheckExpired  = "expired"
)

func (ReadyCheck) TableName() string {
	return "ready_checks"
}

// ReadyCheckMember snapshots one of the ten provisional participants.
// Confirmation is an idempotent flag flip, which gives the set semantics the
// confirm button needs under double clicks.
type ReadyCheckMember struct {
	ID        uint   `gorm:"primaryKey"`
	RcID      string `gorm:"index:idx_rc_member,unique;type:varchar(36);not null"`
	UserID    string `gorm:"index:idx_rc_member,unique;type:varchar(32);not null"`
	Confirmed bool   `gorm:"default:false"`
	Position  int    `gorm:"not null"`
}

func (ReadyCheckMember) TableName() string {
	return "ready_check_members"
}
