package handler

import (
	"encoding/json"
	"net/http"

	"stride/internal/idealself"
)

type IdealSelfHandler struct {
	Svc *idealself.Service
}

type saveProfileReq struct {
	Vision string `json:"vision"`
	// Accepts either a single string or an array of strings.
	FocusAreas any `json:"focus_areas"`
}

func (h *IdealSelfHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Current(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeProfile(w, p)
}

func (h *IdealSelfHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	p, err := h.Svc.Save(r.Context(), req.Vision, focusAreaList(req.FocusAreas))
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeProfile(w, p)
}

func writeProfile(w http.ResponseWriter, p *idealself.Profile) {
	if p == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"vision":      "",
			"focus_areas": []string{},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vision":      p.Vision,
		"focus_areas": idealself.SplitFocusAreas(p.FocusAreas),
	})
}

func focusAreaList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
