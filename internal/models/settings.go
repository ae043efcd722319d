package models

import (
	"strings"
	"time"
)

// QueueSettings is a single-row table with the runtime queue knobs admins
// can change without a restart.
type QueueSettings struct {
	ID           uint      `gorm:"primaryKey"`
	ReadyEnabled bool      `gorm:"default:true"`
	ReadySeconds int       `gorm:"default:60"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (QueueSettings) TableName() string {
	return "queue_settings"
}

// VetoSettings is a single-row table with the runtime veto knobs.
// Maps is stored comma-separated in configured order.
type VetoSettings struct {
	ID          uint      `gorm:"primaryKey"`
	CaptainMode string    `gorm:"type:varchar(10);default:'random'"`
	Maps        string    `gorm:"type:text"`
	TurnSeconds int       `gorm:"default:90"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Captain selection policies
const (
	CaptainModeRandom  = "random"
	CaptainModeHighest = "highest"
)

func (VetoSettings) TableName() string {
	return "veto_settings"
}

// MapList splits the stored pool, dropping empty entries.
func (s *VetoSettings) MapList() []string {
	var out []string
	for _, m := range strings.Split(s.Maps, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// SetMapList stores the pool, preserving order.
func (s *VetoSettings) SetMapList(maps []string) {
	s.Maps = strings.Join(maps, ",")
}
