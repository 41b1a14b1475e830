package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"daybook/internal/model"
	"daybook/internal/store"
)

type TourHandler struct {
	Store store.Store
}

func (h *TourHandler) List(w http.ResponseWriter, r *http.Request) {
	out := []model.Tour{}
	err := h.Store.View(r.Context(), func(tx store.Tx) error {
		tours, err := tx.Tours()
		if err != nil {
			return err
		}
		if tours != nil {
			out = tours
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, out)
}

func (h *TourHandler) Days(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")

	out := []model.Day{}
	err := h.Store.View(r.Context(), func(tx store.Tx) error {
		days, err := tx.DaysByTour(tourID)
		if err != nil {
			return err
		}
		if days != nil {
			out = days
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, out)
}
