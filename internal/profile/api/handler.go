package api

import (
	"encoding/json"
	"net/http"

	"eventhub/internal/auth"
	"eventhub/internal/errs"
	"eventhub/internal/profile"
	"eventhub/internal/utils"
)

type Handler struct {
	Service *profile.Service
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	var req profile.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errs.Validationf("invalid request body"))
		return
	}

	p, err := h.Service.Register(r.Context(), callerID, req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, "profile created", p)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	p, err := h.Service.Get(r.Context(), actor)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "profile", p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	var req profile.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errs.Validationf("invalid request body"))
		return
	}

	p, err := h.Service.Update(r.Context(), actor, req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "profile updated", p)
}
