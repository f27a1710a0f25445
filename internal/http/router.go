package http

import (
	"net/http"

	"stride/internal/config"
	"stride/internal/habit"
	"stride/internal/http/handler"
	mw "stride/internal/http/middleware"
	"stride/internal/idealself"
	"stride/internal/journal"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger(log))

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	habitSvc := &habit.Service{DB: db}
	journalSvc := &journal.Service{DB: db}
	idealSvc := &idealself.Service{DB: db}

	habitH := &handler.HabitHandler{Svc: habitSvc}
	journalH := &handler.JournalHandler{Svc: journalSvc}
	idealH := &handler.IdealSelfHandler{Svc: idealSvc}
	timelineH := &handler.TimelineHandler{Habits: habitSvc, Journal: journalSvc}

	r.Route("/api", func(r chi.Router) {
		r.Get("/habits", habitH.List)
		r.Post("/habits", habitH.Create)
		r.Put("/habits/{id}", habitH.Update)
		r.Get("/habits/{id}/progress", habitH.Progress)

		r.Get("/journal", journalH.List)
		r.Post("/journal", journalH.Create)

		r.Get("/idealself", idealH.Get)
		r.Post("/idealself", idealH.Save)

		r.Get("/timeline", timelineH.Get)
	})

	return r
}
