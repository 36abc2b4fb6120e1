package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventhub/internal/auth"
	"eventhub/internal/errs"
	"eventhub/internal/event"
	"eventhub/internal/utils"
)

type Handler struct {
	Service *event.Service
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	var req event.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errs.Validationf("invalid request body"))
		return
	}

	ev, err := h.Service.Create(r.Context(), actor, req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, "event created", ev)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	var req event.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errs.Validationf("invalid request body"))
		return
	}

	ev, err := h.Service.Update(r.Context(), actor, chi.URLParam(r, "eventId"), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "event updated", ev)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.Service.Get(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "event", ev)
}

func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.ListPublished(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "events", events)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	events, err := h.Service.ListMine(r.Context(), actor)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "events", events)
}
