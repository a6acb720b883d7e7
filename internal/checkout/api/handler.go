package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"ms-storefront/internal/checkout"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
	"ms-storefront/internal/utils"
)

// Handler serves the public checkout surface.
type Handler struct {
	Service *checkout.Service
	Logger  *logger.Logger
}

func NewHandler(service *checkout.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// FinalizeTicketOrder handles POST /api/checkout/tickets.
func (h *Handler) FinalizeTicketOrder(w http.ResponseWriter, r *http.Request) {
	var req models.TicketCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid checkout request", err.Error()))
		return
	}
	if err := validateCustomer(req.Customer); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error(), ""))
		return
	}

	result := h.Service.FinalizeTicketOrder(r.Context(), req)
	h.writeResult(w, result)
}

// FinalizeMerchOrder handles POST /api/checkout/merch.
func (h *Handler) FinalizeMerchOrder(w http.ResponseWriter, r *http.Request) {
	var req models.MerchCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid checkout request", err.Error()))
		return
	}
	if err := validateCustomer(req.Customer); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error(), ""))
		return
	}

	result := h.Service.FinalizeMerchOrder(r.Context(), req)
	h.writeResult(w, result)
}

// GetConfirmation handles GET /api/checkout/confirmation?order_id=…. The
// request may also carry a base64-encoded snapshot parameter, which is
// served as a fallback when the order fetch misses.
func (h *Handler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("order_id is required", ""))
		return
	}

	snapshot := decodeSnapshot(r.URL.Query().Get("snapshot"))
	view, err := h.Service.GetConfirmation(r.Context(), orderID, snapshot)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetConfirmation: %v", err))
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("order not found", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("confirmation", view))
}

func (h *Handler) writeResult(w http.ResponseWriter, result *checkout.Result) {
	switch result.State {
	case checkout.StateSucceeded:
		writeJSON(w, http.StatusCreated, utils.SuccessResponse("order finalized", result))
	case checkout.StateDenied:
		writeJSON(w, http.StatusOK, utils.DeniedResponse(result.Message, result))
	default:
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse(result.Message, ""))
	}
}

func validateCustomer(c models.CustomerDetails) error {
	if c.Email == "" {
		return fmt.Errorf("customer email is required")
	}
	if c.FullName == "" {
		return fmt.Errorf("customer name is required")
	}
	return nil
}

func decodeSnapshot(encoded string) *models.ConfirmationSnapshot {
	if encoded == "" {
		return nil
	}
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var snapshot models.ConfirmationSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
