package models

import (
	"time"
)

type Player struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      string    `gorm:"uniqueIndex;type:varchar(32);not null"`
	DisplayName string    `gorm:"type:varchar(255)"`
	Rating      int       `gorm:"not null;index"`
	GamesPlayed int       `gorm:"default:0;not null"`
	Banned      bool      `gorm:"default:false;index"`
	Synthetic   bool      `gorm:"default:false;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Player) TableName() string {
	return "players"
}
