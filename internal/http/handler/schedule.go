package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"daybook/internal/schedule"
)

type ScheduleHandler struct {
	Svc *schedule.Service
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")

	events, err := h.Svc.ListByDay(r.Context(), dayID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, events)
}

// Batch applies one atomic create/update/delete request to the day's
// schedule. Retrying a batch is NOT safe: creates mint fresh identifiers on
// every application, so a replay duplicates the created events.
func (h *ScheduleHandler) Batch(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")

	var req schedule.Batch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if err := h.Svc.ApplyBatch(r.Context(), dayID, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (h *ScheduleHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")

	tpls, err := h.Svc.ListTemplates(r.Context(), tourID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, tpls)
}

func (h *ScheduleHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayId")

	var req schedule.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	tpl, err := h.Svc.CreateTemplate(r.Context(), dayID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, tpl)
}

func (h *ScheduleHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")
	id := chi.URLParam(r, "templateId")

	ok, err := h.Svc.DeleteTemplate(r.Context(), tourID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": ok})
}
