package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"daybook/internal/day"
)

type DayHandler struct {
	Svc *day.Service
}

func (h *DayHandler) Context(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")

	ctx, err := h.Svc.Context(r.Context(), dayID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ctx)
}

func (h *DayHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")

	var req day.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	note, err := h.Svc.CreateNote(r.Context(), dayID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, note)
}

func (h *DayHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")
	noteID := chi.URLParam(r, "noteId")

	var req day.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	note, err := h.Svc.UpdateNote(r.Context(), dayID, noteID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, note)
}

func (h *DayHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")
	noteID := chi.URLParam(r, "noteId")

	ok, err := h.Svc.DeleteNote(r.Context(), dayID, noteID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": ok})
}

func (h *DayHandler) SaveLodging(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")

	var req day.LodgingInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	lodging, err := h.Svc.SaveLodging(r.Context(), dayID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "lodging": lodging})
}

func (h *DayHandler) DeleteLodging(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")

	ok, err := h.Svc.DeleteLodging(r.Context(), dayID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": ok})
}
