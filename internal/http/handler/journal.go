package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"stride/internal/journal"
)

type JournalHandler struct {
	Svc *journal.Service
}

type entryDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type createEntryReq struct {
	Content string `json:"content"`
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		http.Error(w, "content required", http.StatusBadRequest)
		return
	}

	e, err := h.Svc.Create(r.Context(), req.Content, time.Now())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, entryDTO{ID: e.ID, Content: e.Content, Timestamp: e.Timestamp})
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.List(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryDTO{ID: e.ID, Content: e.Content, Timestamp: e.Timestamp})
	}
	writeJSON(w, http.StatusOK, out)
}
