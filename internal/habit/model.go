package habit

import "time"

// Habit carries the user-defined goal plus a denormalized snapshot of the
// fields derived from its log. The log is the source of truth; the snapshot
// is refreshed on every read and write path that touches the habit.
type Habit struct {
	ID            uint64 `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Color         string `gorm:"size:7;not null;default:'#000000'"`
	TargetPerWeek int    `gorm:"not null;default:7"`

	Score         float64 `gorm:"not null;default:0"`
	CompletedDays int     `gorm:"not null;default:0"`
	Completed     bool    `gorm:"not null;default:false"`
	Streak        int     `gorm:"not null;default:0"`
	BestStreak    int     `gorm:"not null;default:0"`
	LastCompleted *time.Time

	CreatedAt time.Time `gorm:"not null"`
}

// Log is one completion fact: habit H was done on calendar day D.
// At most one row per (habit_id, day); Day is always midnight UTC.
type Log struct {
	ID        uint64    `gorm:"primaryKey"`
	HabitID   uint64    `gorm:"not null;index;uniqueIndex:uq_habit_logs_habit_day"`
	Day       time.Time `gorm:"type:date;not null;uniqueIndex:uq_habit_logs_habit_day"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Log) TableName() string { return "habit_logs" }
