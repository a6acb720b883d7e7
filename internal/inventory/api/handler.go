package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"ms-storefront/internal/inventory"
	"ms-storefront/internal/inventory/db"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/utils"

	"github.com/go-chi/chi/v5"
)

// Handler serves the public availability surface.
type Handler struct {
	Service *inventory.Service
	Store   *db.DB
	Logger  *logger.Logger
}

func NewHandler(service *inventory.Service, store *db.DB, log *logger.Logger) *Handler {
	return &Handler{Service: service, Store: store, Logger: log}
}

// CheckAvailability handles GET /api/availability. The decision is always
// a 200: denial is an expected outcome, not an HTTP error.
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	eventID, err := strconv.ParseInt(q.Get("event_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid event id", err.Error()))
		return
	}
	quantity, err := strconv.Atoi(q.Get("quantity"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid quantity", err.Error()))
		return
	}

	decision := h.Service.Check(r.Context(), eventID, q.Get("ticket_type"), q.Get("tier_title"), quantity)
	if decision.Admitted {
		writeJSON(w, http.StatusOK, utils.SuccessResponse("available", decision))
		return
	}
	writeJSON(w, http.StatusOK, utils.DeniedResponse(decision.Reason, decision))
}

// ListTiers handles GET /api/events/{eventId}/tiers.
func (h *Handler) ListTiers(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid event id", err.Error()))
		return
	}

	tiers, err := h.Store.ListTiersForEvent(r.Context(), eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListTiers: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load tiers", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("tiers", tiers))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
