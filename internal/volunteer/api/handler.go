package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventhub/internal/auth"
	"eventhub/internal/errs"
	"eventhub/internal/models"
	"eventhub/internal/utils"
	"eventhub/internal/volunteer"
)

type Handler struct {
	Service *volunteer.Service
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	eventID := chi.URLParam(r, "eventId")
	app, err := h.Service.Apply(r.Context(), actor, eventID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, "application submitted", app)
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	var req struct {
		Decision models.ApplicationStatus `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errs.Validationf("invalid request body"))
		return
	}

	applicationID := chi.URLParam(r, "applicationId")
	app, err := h.Service.Decide(r.Context(), actor, applicationID, req.Decision)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "application decided", app)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	eventID := chi.URLParam(r, "eventId")
	app, err := h.Service.Status(r.Context(), actor, eventID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "application status", app)
}

func (h *Handler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	eventID := chi.URLParam(r, "eventId")
	apps, err := h.Service.ListForEvent(r.Context(), actor, eventID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "applications", apps)
}
