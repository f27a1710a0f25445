package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stride/internal/habit"

	"github.com/go-chi/chi/v5"
)

const defaultProgressDays = 30

type HabitHandler struct {
	Svc *habit.Service
}

type habitDTO struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	Score         float64    `json:"score"`
	CompletedDays int        `json:"completed_days"`
	CreatedAt     time.Time  `json:"created_at"`
	Completed     bool       `json:"completed"`
	Streak        int        `json:"streak"`
	BestStreak    int        `json:"best_streak"`
	Color         string     `json:"color"`
	TargetPerWeek int        `json:"target_per_week"`
	LastCompleted *time.Time `json:"last_completed"`
}

func toHabitDTO(h habit.Habit) habitDTO {
	return habitDTO{
		ID:            h.ID,
		Name:          h.Name,
		Score:         h.Score,
		CompletedDays: h.CompletedDays,
		CreatedAt:     h.CreatedAt,
		Completed:     h.Completed,
		Streak:        h.Streak,
		BestStreak:    h.BestStreak,
		Color:         h.Color,
		TargetPerWeek: h.TargetPerWeek,
		LastCompleted: h.LastCompleted,
	}
}

type createHabitReq struct {
	Name          string  `json:"name"`
	Color         *string `json:"color"`
	TargetPerWeek any     `json:"target_per_week"`
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHabitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	in := habit.CreateInput{Name: req.Name, TargetPerWeek: 7}
	if req.Color != nil {
		in.Color = strings.TrimSpace(*req.Color)
	}
	if n, ok := intField(req.TargetPerWeek); ok {
		in.TargetPerWeek = n
	}

	created, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":              created.ID,
		"name":            created.Name,
		"color":           created.Color,
		"target_per_week": created.TargetPerWeek,
	})
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	habits, err := h.Svc.List(r.Context(), time.Now())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]habitDTO, 0, len(habits))
	for _, hb := range habits {
		out = append(out, toHabitDTO(hb))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateHabitReq struct {
	Completed     *bool   `json:"completed"`
	Color         *string `json:"color"`
	TargetPerWeek any     `json:"target_per_week"`
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateHabitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	in := habit.UpdateInput{Completed: req.Completed, Color: req.Color}
	// An unparseable target is tolerated: the habit keeps its current value.
	if n, ok := intField(req.TargetPerWeek); ok {
		in.TargetPerWeek = &n
	}

	updated, err := h.Svc.Update(r.Context(), id, in, time.Now())
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toHabitDTO(*updated))
}

func (h *HabitHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	days := defaultProgressDays
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	p, err := h.Svc.Progress(r.Context(), id, days, time.Now())
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"habit": map[string]any{
			"id":              p.Habit.ID,
			"name":            p.Habit.Name,
			"target_per_week": p.Habit.TargetPerWeek,
			"color":           p.Habit.Color,
		},
		"dates":  p.Dates,
		"ideal":  p.Ideal,
		"actual": p.Actual,
	})
}

// intField coerces a decoded JSON value to int. Numbers and numeric strings
// parse; anything else reports !ok so callers can fall back.
func intField(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
