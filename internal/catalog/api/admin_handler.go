package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
	"ms-storefront/internal/utils"

	"github.com/gin-gonic/gin"
)

// OrderReader is the order surface the back office needs.
type OrderReader interface {
	GetOrderWithItems(ctx context.Context, id string) (*models.OrderWithItems, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// AdminHandler serves the protected back-office API.
type AdminHandler struct {
	Service *catalog.Service
	Orders  OrderReader
	Logger  *logger.Logger
}

func NewAdminHandler(service *catalog.Service, orders OrderReader, log *logger.Logger) *AdminHandler {
	return &AdminHandler{Service: service, Orders: orders, Logger: log}
}

// ---------------- EVENTS ----------------

func (h *AdminHandler) CreateEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	if err := h.Service.CreateEvent(c.Request.Context(), &event); err != nil {
		h.writeServiceError(c, "Could not create event", err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Event created", event))
}

func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	id, ok := h.pathID(c, "eventId")
	if !ok {
		return
	}
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	event.ID = id
	if err := h.Service.UpdateEvent(c.Request.Context(), &event); err != nil {
		h.writeServiceError(c, "Could not update event", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Event updated", event))
}

func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	id, ok := h.pathID(c, "eventId")
	if !ok {
		return
	}
	if err := h.Service.DeleteEvent(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, "Could not delete event", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Event deleted", nil))
}

func (h *AdminHandler) GetSalesSummary(c *gin.Context) {
	id, ok := h.pathID(c, "eventId")
	if !ok {
		return
	}
	summary, err := h.Service.GetSalesSummary(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, "Could not load sales summary", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Sales summary", summary))
}

// ---------------- INVENTORY TIERS ----------------

func (h *AdminHandler) CreateTier(c *gin.Context) {
	var tier models.InventoryTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	if err := h.Service.CreateTier(c.Request.Context(), &tier); err != nil {
		h.writeServiceError(c, "Could not create tier", err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Tier created", tier))
}

func (h *AdminHandler) UpdateTier(c *gin.Context) {
	id, ok := h.pathID(c, "tierId")
	if !ok {
		return
	}
	var tier models.InventoryTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	tier.ID = id
	if err := h.Service.UpdateTier(c.Request.Context(), &tier); err != nil {
		h.writeServiceError(c, "Could not update tier", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Tier updated", tier))
}

func (h *AdminHandler) DeleteTier(c *gin.Context) {
	id, ok := h.pathID(c, "tierId")
	if !ok {
		return
	}
	if err := h.Service.DeleteTier(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, "Could not delete tier", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Tier deleted", nil))
}

// ---------------- MERCHANDISE ----------------

func (h *AdminHandler) CreateMerchItem(c *gin.Context) {
	var item models.MerchItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	if err := h.Service.CreateMerchItem(c.Request.Context(), &item); err != nil {
		h.writeServiceError(c, "Could not create item", err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Item created", item))
}

func (h *AdminHandler) UpdateMerchItem(c *gin.Context) {
	id, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	var item models.MerchItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	item.ID = id
	if err := h.Service.UpdateMerchItem(c.Request.Context(), &item); err != nil {
		h.writeServiceError(c, "Could not update item", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Item updated", item))
}

func (h *AdminHandler) DeleteMerchItem(c *gin.Context) {
	id, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	if err := h.Service.DeleteMerchItem(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, "Could not delete item", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Item deleted", nil))
}

// ---------------- SITE CONTENT ----------------

func (h *AdminHandler) ListTestimonials(c *gin.Context) {
	rows, err := h.Service.ListTestimonials(c.Request.Context(), false)
	if err != nil {
		h.writeServiceError(c, "Could not load testimonials", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Testimonials", rows))
}

func (h *AdminHandler) CreateTestimonial(c *gin.Context) {
	var row models.Testimonial
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	if err := h.Service.CreateTestimonial(c.Request.Context(), &row); err != nil {
		h.writeServiceError(c, "Could not create testimonial", err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Testimonial created", row))
}

func (h *AdminHandler) UpdateTestimonial(c *gin.Context) {
	id, ok := h.pathID(c, "testimonialId")
	if !ok {
		return
	}
	var row models.Testimonial
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	row.ID = id
	if err := h.Service.UpdateTestimonial(c.Request.Context(), &row); err != nil {
		h.writeServiceError(c, "Could not update testimonial", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Testimonial updated", row))
}

func (h *AdminHandler) DeleteTestimonial(c *gin.Context) {
	id, ok := h.pathID(c, "testimonialId")
	if !ok {
		return
	}
	if err := h.Service.DeleteTestimonial(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, "Could not delete testimonial", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Testimonial deleted", nil))
}

func (h *AdminHandler) CreateFAQ(c *gin.Context) {
	var row models.FAQ
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	if err := h.Service.CreateFAQ(c.Request.Context(), &row); err != nil {
		h.writeServiceError(c, "Could not create FAQ", err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("FAQ created", row))
}

func (h *AdminHandler) UpdateFAQ(c *gin.Context) {
	id, ok := h.pathID(c, "faqId")
	if !ok {
		return
	}
	var row models.FAQ
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	row.ID = id
	if err := h.Service.UpdateFAQ(c.Request.Context(), &row); err != nil {
		h.writeServiceError(c, "Could not update FAQ", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("FAQ updated", row))
}

func (h *AdminHandler) DeleteFAQ(c *gin.Context) {
	id, ok := h.pathID(c, "faqId")
	if !ok {
		return
	}
	if err := h.Service.DeleteFAQ(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, "Could not delete FAQ", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("FAQ deleted", nil))
}

func (h *AdminHandler) CreateGalleryImage(c *gin.Context) {
	var row models.GalleryImage
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}
	if err := h.Service.CreateGalleryImage(c.Request.Context(), &row); err != nil {
		h.writeServiceError(c, "Could not create gallery image", err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Gallery image created", row))
}

func (h *AdminHandler) DeleteGalleryImage(c *gin.Context) {
	id, ok := h.pathID(c, "imageId")
	if !ok {
		return
	}
	if err := h.Service.DeleteGalleryImage(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, "Could not delete gallery image", err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Gallery image deleted", nil))
}

// ---------------- CUSTOMERS & ORDERS ----------------

func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	order, err := h.Orders.GetOrderWithItems(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Order", order))
}

// LookupCustomerOrders finds a customer by email and returns their order
// history, newest first.
func (h *AdminHandler) LookupCustomerOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("email query parameter is required", ""))
		return
	}

	customer, err := h.Orders.FindCustomerByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Customer not found", err.Error()))
		return
	}

	orders, err := h.Orders.ListOrdersByCustomer(c.Request.Context(), customer.ID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("LookupCustomerOrders: %v", err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Could not load orders", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Customer orders", gin.H{
		"customer": customer,
		"orders":   orders,
	}))
}

// ---------------- HELPERS ----------------

func (h *AdminHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid "+name, err.Error()))
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) writeServiceError(c *gin.Context, message string, err error) {
	if errors.Is(err, catalog.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(message, err.Error()))
		return
	}
	h.Logger.Error("API", fmt.Sprintf("%s: %v", message, err))
	c.JSON(http.StatusInternalServerError, utils.ErrorResponse(message, err.Error()))
}
