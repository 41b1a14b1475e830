package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"daybook/internal/model"
	"daybook/internal/personnel"
)

type PersonnelHandler struct {
	Svc *personnel.Service
}

func (h *PersonnelHandler) List(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")

	roster, err := h.Svc.List(r.Context(), tourID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, roster)
}

func (h *PersonnelHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")

	var req personnel.PersonInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	p, err := h.Svc.CreatePerson(r.Context(), tourID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, p)
}

func (h *PersonnelHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")
	personID := chi.URLParam(r, "personId")

	var patch model.PersonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	p, err := h.Svc.UpdatePerson(r.Context(), tourID, personID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, p)
}

func (h *PersonnelHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")
	personID := chi.URLParam(r, "personId")

	ok, err := h.Svc.DeletePerson(r.Context(), tourID, personID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": ok})
}

func (h *PersonnelHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")

	var req personnel.GroupInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	g, err := h.Svc.CreateGroup(r.Context(), tourID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, g)
}

func (h *PersonnelHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")
	groupID := chi.URLParam(r, "groupId")

	var patch model.GroupPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	g, err := h.Svc.UpdateGroup(r.Context(), tourID, groupID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, g)
}

func (h *PersonnelHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")
	groupID := chi.URLParam(r, "groupId")

	ok, err := h.Svc.DeleteGroup(r.Context(), tourID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": ok})
}
