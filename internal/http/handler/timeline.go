package handler

import (
	"net/http"
	"time"

	"stride/internal/habit"
	"stride/internal/journal"
	"stride/internal/timeline"
)

type TimelineHandler struct {
	Habits  *habit.Service
	Journal *journal.Service
}

func (h *TimelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	habits, err := h.Habits.List(r.Context(), time.Now())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	entries, err := h.Journal.List(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	items := make([]timeline.Item, 0, len(habits)+len(entries))
	for _, hb := range habits {
		items = append(items, timeline.HabitItem(hb))
	}
	for _, e := range entries {
		items = append(items, timeline.JournalItem(e))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(timeline.Compose(items)))
}
