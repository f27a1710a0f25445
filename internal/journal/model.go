package journal

import "time"

type Entry struct {
	ID        uint64    `gorm:"primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"index;not null"`
}

func (Entry) TableName() string { return "journal_entries" }
