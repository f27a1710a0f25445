package habit

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("habit not found")

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name          string
	Color         string
	TargetPerWeek int
}

type UpdateInput struct {
	Completed     *bool
	Color         *string
	TargetPerWeek *int
}

// ProgressData is one habit's actual-vs-ideal series for a date window.
type ProgressData struct {
	Habit  Habit
	Dates  []string
	Ideal  []float64
	Actual []int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Habit, error) {
	h := Habit{
		Name:          in.Name,
		Color:         in.Color,
		TargetPerWeek: normalizeTarget(in.TargetPerWeek),
	}
	if h.Color == "" {
		h.Color = "#000000"
	}
	if err := s.DB.WithContext(ctx).Create(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// List returns all habits newest-created first, each with its derived
// snapshot refreshed from the log and persisted.
func (s *Service) List(ctx context.Context, now time.Time) ([]Habit, error) {
	var habits []Habit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at desc").Find(&habits).Error; err != nil {
			return err
		}
		for i := range habits {
			if err := refresh(tx, &habits[i], now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return habits, nil
}

// Update applies optional color/target changes, toggles today's completion
// when requested, then recomputes and persists the snapshot.
func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput, now time.Time) (*Habit, error) {
	var h Habit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&h, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if in.Color != nil {
			h.Color = *in.Color
		}
		if in.TargetPerWeek != nil {
			h.TargetPerWeek = normalizeTarget(*in.TargetPerWeek)
		}

		if in.Completed != nil {
			if err := toggleDay(tx, h.ID, DateOf(now), *in.Completed); err != nil {
				return err
			}
		}

		return refresh(tx, &h, now)
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Service) Progress(ctx context.Context, id uint64, windowDays int, now time.Time) (*ProgressData, error) {
	var out ProgressData
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out.Habit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		days, err := logDays(tx, out.Habit.ID)
		if err != nil {
			return err
		}
		out.Dates, out.Ideal, out.Actual = ComputeProgress(out.Habit.CreatedAt, days, out.Habit.TargetPerWeek, windowDays, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// toggleDay inserts or deletes the log row for one day. Existence is checked
// first so the unique (habit_id, day) constraint never trips.
func toggleDay(tx *gorm.DB, habitID uint64, day time.Time, completed bool) error {
	var existing Log
	err := tx.Where("habit_id = ? AND day = ?", habitID, day).First(&existing).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	switch {
	case completed && !found:
		return tx.Create(&Log{HabitID: habitID, Day: day}).Error
	case !completed && found:
		return tx.Delete(&existing).Error
	}
	return nil
}

// refresh recomputes the snapshot from the log and persists it. best_streak
// merges with the stored value via max: it is a high-water mark and never
// decreases, even after log rows are deleted.
func refresh(tx *gorm.DB, h *Habit, now time.Time) error {
	days, err := logDays(tx, h.ID)
	if err != nil {
		return err
	}

	st := ComputeStats(h.CreatedAt, days, now)
	h.Score = st.Score
	h.CompletedDays = st.CompletedDays
	h.Completed = st.CompletedToday
	h.Streak = st.Streak
	if st.BestStreak > h.BestStreak {
		h.BestStreak = st.BestStreak
	}
	h.LastCompleted = st.LastCompleted

	return tx.Save(h).Error
}

func logDays(tx *gorm.DB, habitID uint64) ([]time.Time, error) {
	var logs []Log
	if err := tx.Where("habit_id = ?", habitID).Order("day asc").Find(&logs).Error; err != nil {
		return nil, err
	}
	days := make([]time.Time, 0, len(logs))
	for _, l := range logs {
		days = append(days, l.Day)
	}
	return days, nil
}

func normalizeTarget(n int) int {
	if n < 1 || n > 7 {
		return 7
	}
	return n
}
