package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stride/internal/config"
	"stride/internal/db"
	httpx "stride/internal/http"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return httpx.NewRouter(config.Config{}, gdb, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestCreateHabit(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/habits", `{"name":"read","color":"#112233","target_per_week":5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", w.Code, w.Body.String())
	}

	var got struct {
		ID            uint64 `json:"id"`
		Name          string `json:"name"`
		Color         string `json:"color"`
		TargetPerWeek int    `json:"target_per_week"`
	}
	decode(t, w, &got)
	if got.ID == 0 || got.Name != "read" || got.Color != "#112233" || got.TargetPerWeek != 5 {
		t.Errorf("created habit = %+v", got)
	}
}

func TestCreateHabit_Rejections(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"missing name", `{"color":"#123456"}`},
		{"blank name", `{"name":"   "}`},
	}
	for _, tc := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/habits", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, w.Code)
		}
	}

	// Nothing was persisted.
	w := doJSON(t, r, http.MethodGet, "/api/habits", "")
	var habits []map[string]any
	decode(t, w, &habits)
	if len(habits) != 0 {
		t.Errorf("rejected creates left %d habits behind", len(habits))
	}
}

func TestCreateHabit_UnparseableTargetFallsBack(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/habits", `{"name":"swim","target_per_week":"often"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var got struct {
		TargetPerWeek int `json:"target_per_week"`
	}
	decode(t, w, &got)
	if got.TargetPerWeek != 7 {
		t.Errorf("target_per_week = %d, want default 7", got.TargetPerWeek)
	}
}

func TestListHabits_FreshHabit(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/habits", `{"name":"meditate"}`)

	w := doJSON(t, r, http.MethodGet, "/api/habits", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var habits []struct {
		Name          string  `json:"name"`
		Score         float64 `json:"score"`
		CompletedDays int     `json:"completed_days"`
		Completed     bool    `json:"completed"`
		Streak        int     `json:"streak"`
		BestStreak    int     `json:"best_streak"`
	}
	decode(t, w, &habits)
	if len(habits) != 1 {
		t.Fatalf("got %d habits, want 1", len(habits))
	}
	h := habits[0]
	if h.CompletedDays != 0 || h.Streak != 0 || h.BestStreak != 0 || h.Completed {
		t.Errorf("fresh habit summary = %+v", h)
	}
}

func TestToggleHabit(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/habits", `{"name":"stretch"}`)
	var created struct {
		ID uint64 `json:"id"`
	}
	decode(t, w, &created)

	type summary struct {
		Completed     bool `json:"completed"`
		CompletedDays int  `json:"completed_days"`
		Streak        int  `json:"streak"`
		BestStreak    int  `json:"best_streak"`
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/habits/%d", created.ID), `{"completed":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle on status = %d (%s)", w.Code, w.Body.String())
	}
	var on summary
	decode(t, w, &on)
	if !on.Completed || on.CompletedDays != 1 || on.Streak != 1 || on.BestStreak != 1 {
		t.Errorf("after toggle on: %+v", on)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/habits/%d", created.ID), `{"completed":false}`)
	var off summary
	decode(t, w, &off)
	if off.Completed || off.CompletedDays != 0 || off.Streak != 0 {
		t.Errorf("after toggle off: %+v", off)
	}
	if off.BestStreak != 1 {
		t.Errorf("best_streak = %d after un-toggle, want 1", off.BestStreak)
	}
}

func TestUpdateHabit_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/habits/9999", `{"completed":true}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestProgress(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/habits", `{"name":"walk"}`)
	var created struct {
		ID uint64 `json:"id"`
	}
	decode(t, w, &created)

	// Unparseable days falls back to the default window; the habit was
	// created today, so the series is a single day either way.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/habits/%d/progress?days=soon", created.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var got struct {
		Habit struct {
			Name string `json:"name"`
		} `json:"habit"`
		Dates  []string  `json:"dates"`
		Ideal  []float64 `json:"ideal"`
		Actual []int     `json:"actual"`
	}
	decode(t, w, &got)
	if got.Habit.Name != "walk" {
		t.Errorf("habit header = %+v", got.Habit)
	}
	if len(got.Dates) != 1 || len(got.Ideal) != 1 || len(got.Actual) != 1 {
		t.Errorf("series lengths = %d/%d/%d, want 1 each", len(got.Dates), len(got.Ideal), len(got.Actual))
	}

	w = doJSON(t, r, http.MethodGet, "/api/habits/9999/progress", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestJournal(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/journal", `{"content":"slow day"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	var entry struct {
		ID      uint64 `json:"id"`
		Content string `json:"content"`
	}
	decode(t, w, &entry)
	if entry.ID == 0 || entry.Content != "slow day" {
		t.Errorf("created entry = %+v", entry)
	}

	if w := doJSON(t, r, http.MethodPost, "/api/journal", `{"content":"  "}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank content status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/journal", "")
	var entries []map[string]any
	decode(t, w, &entries)
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestIdealSelf(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/idealself", "")
	var empty struct {
		Vision     string   `json:"vision"`
		FocusAreas []string `json:"focus_areas"`
	}
	decode(t, w, &empty)
	if empty.Vision != "" || len(empty.FocusAreas) != 0 {
		t.Errorf("empty profile = %+v", empty)
	}

	// A single string is accepted in place of an array.
	w = doJSON(t, r, http.MethodPost, "/api/idealself", `{"vision":"be calm","focus_areas":"mind"}`)
	var got struct {
		Vision     string   `json:"vision"`
		FocusAreas []string `json:"focus_areas"`
	}
	decode(t, w, &got)
	if got.Vision != "be calm" || len(got.FocusAreas) != 1 || got.FocusAreas[0] != "mind" {
		t.Errorf("saved profile = %+v", got)
	}

	w = doJSON(t, r, http.MethodPost, "/api/idealself", `{"vision":"be strong","focus_areas":["body"," rest ",""]}`)
	decode(t, w, &got)
	if got.Vision != "be strong" {
		t.Errorf("vision = %q, want newest save", got.Vision)
	}
	if len(got.FocusAreas) != 2 || got.FocusAreas[0] != "body" || got.FocusAreas[1] != "rest" {
		t.Errorf("focus areas = %v, want trimmed [body rest]", got.FocusAreas)
	}

	w = doJSON(t, r, http.MethodGet, "/api/idealself", "")
	decode(t, w, &got)
	if got.Vision != "be strong" {
		t.Errorf("current vision = %q, want the latest save", got.Vision)
	}
}

func TestTimeline(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/habits", `{"name":"read"}`)
	doJSON(t, r, http.MethodPost, "/api/journal", `{"content":"quiet evening"}`)

	w := doJSON(t, r, http.MethodGet, "/api/timeline", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}

	body := w.Body.String()
	parts := strings.Split(body, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("timeline has %d items, want 2:\n%s", len(parts), body)
	}
	// The journal entry was written after the habit, so it comes first.
	if !strings.HasPrefix(parts[0], "JOURNAL [") || !strings.Contains(parts[0], "quiet evening") {
		t.Errorf("first item = %q, want the journal entry", parts[0])
	}
	if !strings.HasPrefix(parts[1], "HABIT: read") {
		t.Errorf("second item = %q, want the habit line", parts[1])
	}
}
