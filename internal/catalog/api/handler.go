package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/catalog/db"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/utils"

	"github.com/go-chi/chi/v5"
)

// Handler serves the public, read-only catalog surface: events,
// merchandise, and site content.
type Handler struct {
	Service *catalog.Service
	Logger  *logger.Logger
}

func NewHandler(service *catalog.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.ListEvents(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListEvents: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load events", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("events", events))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid event id", err.Error()))
		return
	}

	event, err := h.Service.GetEvent(r.Context(), id)
	if errors.Is(err, db.ErrEventNotFound) {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("event not found", ""))
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetEvent: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load event", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("event", event))
}

func (h *Handler) ListMerchItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListMerchItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListMerchItems: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load merchandise", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("merchandise", items))
}

func (h *Handler) GetMerchItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid item id", err.Error()))
		return
	}

	item, err := h.Service.GetMerchItem(r.Context(), id)
	if errors.Is(err, db.ErrItemNotFound) {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("item not found", ""))
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetMerchItem: %v", err))
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load item", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("item", item))
}

func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListTestimonials(r.Context(), true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load testimonials", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("testimonials", rows))
}

func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListFAQs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load FAQs", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("faqs", rows))
}

func (h *Handler) ListGalleryImages(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListGalleryImages(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not load gallery", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("gallery", rows))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
