package models

// Counter supplies monotonic ids via atomic increment-and-read.
type Counter struct {
	Name string `gorm:"primaryKey;type:varchar(32)"`
	Seq  int    `gorm:"default:0;not null"`
}

// CounterMatchID names the match id sequence.
const CounterMatchID = "matchId"

func (Counter) TableName() string {
	return "counters"
}
