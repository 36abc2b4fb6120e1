package api

import (
	"net/http"

	"eventhub/internal/auth"
	"eventhub/internal/dashboard"
	"eventhub/internal/errs"
	"eventhub/internal/utils"
)

type Handler struct {
	Service *dashboard.Service
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	stats, err := h.Service.Stats(r.Context(), actor)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "dashboard stats", stats)
}

func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	analysis, err := h.Service.Analysis(r.Context(), actor)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "dashboard analysis", analysis)
}
