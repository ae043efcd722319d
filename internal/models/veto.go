package models

import (
	"time"
)

// VetoState tracks the turn-based map elimination for one match.
// CurrentTeam is empty when the veto has not started or has finished;
// Picked is set once exactly one map remains.
type VetoState struct {
	ID          uint       `gorm:"primaryKey"`
	MatchID     int        `gorm:"uniqueIndex;not null"`
	CaptainA    string     `gorm:"type:varchar(32);not null"`
	CaptainB    string     `gorm:"type:varchar(32);not null"`
	CurrentTeam string     `gorm:"type:varchar(1)"`
	TurnEndsAt  *time.Time `gorm:""`
	Picked      string     `gorm:"type:varchar(64)"`

	VetoMessageID string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (VetoState) TableName() string {
	return "veto_states"
}

// VetoMap is one entry of a match's map pool. Position preserves the
// configured pool order for rendering; Banned rows stay around so the board
// can show the full elimination sequence.
type VetoMap struct {
	ID       uint   `gorm:"primaryKey"`
	MatchID  int    `gorm:"index:idx_veto_map,unique;not null"`
	Name     string `gorm:"index:idx_veto_map,unique;type:varchar(64);not null"`
	Position int    `gorm:"not null"`
	Banned   bool   `gorm:"default:false"`
}

func (VetoMap) TableName() string {
	return "veto_maps"
}
