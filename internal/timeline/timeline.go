package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"stride/internal/habit"
	"stride/internal/journal"
)

const stampLayout = "2006-01-02 15:04"

// Item is one timeline line keyed by its own timestamp: a habit's creation
// time or a journal entry's timestamp, never a completion time.
type Item struct {
	At   time.Time
	Line string
}

func HabitItem(h habit.Habit) Item {
	line := fmt.Sprintf("HABIT: %s | Score: %.1f%% | Streak: %d | Days: %d | Created: %s",
		h.Name, h.Score, h.Streak, h.CompletedDays, h.CreatedAt.Format(stampLayout))
	if h.LastCompleted != nil {
		line += " | Last done: " + h.LastCompleted.Format(stampLayout)
	}
	return Item{At: h.CreatedAt, Line: line}
}

func JournalItem(e journal.Entry) Item {
	return Item{
		At:   e.Timestamp,
		Line: fmt.Sprintf("JOURNAL [%s]: %s", e.Timestamp.Format(stampLayout), e.Content),
	}
}

// Compose merges items newest first, separated by blank lines.
func Compose(items []Item) string {
	sort.SliceStable(items, func(i, j int) bool { return items[i].At.After(items[j].At) })
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.Line)
	}
	return strings.Join(lines, "\n\n")
}
