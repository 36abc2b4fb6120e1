package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventhub/internal/auth"
	"eventhub/internal/booking"
	"eventhub/internal/errs"
	"eventhub/internal/utils"
)

type Handler struct {
	Service *booking.Service
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	eventID := chi.URLParam(r, "eventId")
	b, err := h.Service.Book(r.Context(), actor, eventID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, "booking created", b)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	bookingID := chi.URLParam(r, "bookingId")
	if err := h.Service.Cancel(r.Context(), actor, bookingID); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "booking cancelled", nil)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	bookings, err := h.Service.ListMine(r.Context(), actor)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "bookings", bookings)
}

func (h *Handler) TicketQR(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	bookingID := chi.URLParam(r, "bookingId")
	png, err := h.Service.TicketQR(r.Context(), actor, bookingID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, errs.Forbiddenf("missing caller identity"))
		return
	}

	var req struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errs.Validationf("invalid request body"))
		return
	}

	b, err := h.Service.CheckIn(r.Context(), actor, req.Payload)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "checked in", b)
}
