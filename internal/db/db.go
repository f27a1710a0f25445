package db

import (
	"fmt"

	"stride/internal/habit"
	"stride/internal/idealself"
	"stride/internal/journal"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&habit.Habit{},
		&habit.Log{},
		&journal.Entry{},
		&idealself.Profile{},
	); err != nil {
		return err
	}

	// One completion per habit per day, plus the common read paths.
	stmts := []string{
		`create unique index if not exists uq_habit_logs_habit_day on habit_logs(habit_id, day);`,
		`create index if not exists idx_habits_created on habits(created_at desc);`,
		`create index if not exists idx_habit_logs_habit on habit_logs(habit_id, day asc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
