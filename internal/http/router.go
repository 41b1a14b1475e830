package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"daybook/internal/config"
	"daybook/internal/day"
	"daybook/internal/http/handler"
	mw "daybook/internal/http/middleware"
	"daybook/internal/personnel"
	"daybook/internal/schedule"
	"daybook/internal/store"
)

func NewRouter(cfg config.Config, st store.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	// the original API addresses everything with trailing slashes
	r.Use(chimw.StripSlashes)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	tours := &handler.TourHandler{Store: st}
	sched := &handler.ScheduleHandler{Svc: &schedule.Service{Store: st}}
	dayH := &handler.DayHandler{Svc: &day.Service{Store: st}}
	pers := &handler.PersonnelHandler{Svc: &personnel.Service{Store: st}}

	r.Route("/tours", func(r chi.Router) {
		r.Get("/", tours.List)

		r.Route("/{tourId}", func(r chi.Router) {
			r.Get("/days", tours.Days)

			r.Route("/personnel", func(r chi.Router) {
				r.Get("/", pers.List)
				r.Post("/", pers.CreatePerson)
				r.Put("/{personId}", pers.UpdatePerson)
				r.Delete("/{personId}", pers.DeletePerson)
			})

			r.Route("/schedule-templates", func(r chi.Router) {
				r.Get("/", sched.ListTemplates)
				r.Delete("/{templateId}", sched.DeleteTemplate)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", pers.CreateGroup)
				r.Put("/{groupId}", pers.UpdateGroup)
				r.Delete("/{groupId}", pers.DeleteGroup)
			})
		})
	})

	r.Route("/days/{dayId}", func(r chi.Router) {
		r.Get("/schedule", sched.List)
		r.Post("/schedule/batch", sched.Batch)
		r.Post("/schedule-templates", sched.CreateTemplate)

		r.Get("/context", dayH.Context)

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", dayH.CreateNote)
			r.Put("/{noteId}", dayH.UpdateNote)
			r.Delete("/{noteId}", dayH.DeleteNote)
		})

		r.Post("/lodging", dayH.SaveLodging)
		r.Delete("/lodging", dayH.DeleteLodging)
	})

	return r
}
