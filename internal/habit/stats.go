package habit

import (
	"math"
	"sort"
	"time"
)

// Stats is everything derivable from (createdAt, logged days, now).
type Stats struct {
	CompletedDays  int
	Streak         int
	BestStreak     int
	LastCompleted  *time.Time
	CompletedToday bool
	Score          float64
}

// DateOf truncates t to its calendar day, keyed at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// normalizeDays sorts ascending and drops duplicate calendar days. The store
// already guarantees uniqueness, but the engine does not rely on the feed
// being sorted or deduplicated.
func normalizeDays(days []time.Time) []time.Time {
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		out = append(out, DateOf(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	dedup := out[:0]
	for _, d := range out {
		if len(dedup) == 0 || !d.Equal(dedup[len(dedup)-1]) {
			dedup = append(dedup, d)
		}
	}
	return dedup
}

// ComputeStats derives the habit's snapshot fields from its log. It is total
// over its inputs: unsorted, duplicated, or empty day sets are all fine.
//
// The returned BestStreak is only the best run visible in this log; callers
// merge it with any previously stored value via max to keep the stored
// best_streak a high-water mark.
func ComputeStats(createdAt time.Time, days []time.Time, now time.Time) Stats {
	ds := normalizeDays(days)
	today := DateOf(now)

	st := Stats{CompletedDays: len(ds)}

	best, current := 0, 0
	for i, d := range ds {
		if i == 0 || daysBetween(ds[i-1], d) == 1 {
			current++
		} else {
			if current > best {
				best = current
			}
			current = 1
		}
		if d.Equal(today) {
			st.CompletedToday = true
		}
	}
	if current > best {
		best = current
	}
	st.BestStreak = best

	if len(ds) > 0 {
		last := ds[len(ds)-1]
		st.LastCompleted = &last
		// A streak is only "current" while it is still alive: if the most
		// recent log day is more than one day stale, it has lapsed.
		if daysBetween(last, today) > 1 {
			current = 0
		}
	}
	st.Streak = current

	elapsed := int(now.Sub(createdAt).Hours() / 24)
	if elapsed < 1 {
		elapsed = 1
	}
	st.Score = float64(st.CompletedDays) / float64(elapsed) * 100

	return st
}

// ComputeProgress builds the aligned dates/ideal/actual series for the last
// windowDays days, clamped so the series never starts before the habit
// existed. Both cumulative counts run from the creation day, not from the
// window start. A non-positive windowDays falls back to 30.
func ComputeProgress(createdAt time.Time, days []time.Time, targetPerWeek, windowDays int, now time.Time) (dates []string, ideal []float64, actual []int) {
	if windowDays <= 0 {
		windowDays = 30
	}
	if targetPerWeek <= 0 {
		targetPerWeek = 7
	}

	today := DateOf(now)
	created := DateOf(createdAt)

	start := today.AddDate(0, 0, -(windowDays - 1))
	if created.After(start) {
		start = created
	}

	dates = []string{}
	ideal = []float64{}
	actual = []int{}
	if created.After(today) {
		return dates, ideal, actual
	}

	// One forward pass over creation..today gives the cumulative actual
	// count for every day, so the display loop never rescans the log.
	logged := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		logged[DateOf(d)] = struct{}{}
	}
	cumulative := make(map[time.Time]int)
	count := 0
	for cursor := created; !cursor.After(today); cursor = cursor.AddDate(0, 0, 1) {
		if _, ok := logged[cursor]; ok {
			count++
		}
		cumulative[cursor] = count
	}

	step := float64(targetPerWeek) / 7.0
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
		actual = append(actual, cumulative[d])
		// Creation day counts as day 1 of the ideal ramp.
		sinceCreation := daysBetween(created, d) + 1
		ideal = append(ideal, round2(float64(sinceCreation)*step))
	}
	return dates, ideal, actual
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
