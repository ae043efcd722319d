package models

import (
	"time"
)

type Match struct {
	ID        uint   `gorm:"primaryKey"`
	MatchID   int    `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"type:varchar(20);default:'voting';index"`
	Winner    string `gorm:"type:varchar(1)"`
	PickedMap string `gorm:"type:varchar(64)"`

	// Captain result votes, empty until cast.
	CapVoteA string `gorm:"type:varchar(1)"`
	CapVoteB string `gorm:"type:varchar(1)"`

	// Collaborator references (thread, voice rooms, display messages).
	ThreadID         string `gorm:"type:varchar(32)"`
	VoiceAChannelID  string `gorm:"type:varchar(32)"`
	VoiceBChannelID  string `gorm:"type:varchar(32)"`
	RecapMessageID   string `gorm:"type:varchar(32)"`
	VoteMessageID    string `gorm:"type:varchar(32)"`
	ReviewMessageID  string `gorm:"type:varchar(32)"`
	HistoryMessageID string `gorm:"type:varchar(32)"`

	AdminSetWinnerID string `gorm:"type:varchar(32)"`
	PreviousWinner   string `gorm:"type:varchar(1)"`

	CreatedAt  time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
	ClosedAt   *time.Time `gorm:"index"`
	CanceledAt *time.Time
	ReversedAt *time.Time
}

// Match status constants
const (
	MatchStatusVoting    = "voting"
	MatchStatusReview    = "review"
	MatchStatusClosed    = "closed"
	MatchStatusAbandoned = "abandoned"
	MatchStatusReversed  = "reversed"
)

// Team labels
const (
	TeamA = "A"
	TeamB = "B"
)

// TerminalMatchStatuses are the states a participant may queue out of.
var TerminalMatchStatuses = []string{MatchStatusClosed, MatchStatusAbandoned, MatchStatusReversed}

// IsTerminal reports whether the match can no longer change outcome.
func (m *Match) IsTerminal() bool {
	switch m.Status {
	case MatchStatusClosed, MatchStatusAbandoned, MatchStatusReversed:
		return true
	}
	return false
}

func (Match) TableName() string {
	return "matches"
}

// MatchPlayer is an immutable team assignment row.
type MatchPlayer struct {
	ID      uint   `gorm:"primaryKey"`
	MatchID int    `gorm:"index:idx_match_player,unique;not null"`
	UserID  string `gorm:"index:idx_match_player,unique;type:varchar(32);not null"`
	Team    string `gorm:"type:varchar(1);not null"`
}

func (MatchPlayer) TableName() string {
	return "match_players"
}
