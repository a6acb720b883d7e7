package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	checkoutdb "ms-storefront/internal/checkout/db"
	"ms-storefront/internal/config"
	"ms-storefront/internal/inventory"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
	"ms-storefront/internal/pricing"
	"ms-storefront/internal/utils"
)

// Checkout attempt states. One attempt walks these strictly in order;
// Denied and Failed are terminal, Failed absorbs any persistence error.
const (
	StateIdle                 = "idle"
	StateValidating           = "validating"
	StateComputing            = "computing"
	StatePersistingCustomer   = "persisting_customer"
	StatePersistingOrder      = "persisting_order"
	StatePersistingLineItems  = "persisting_line_items"
	StateSendingConfirmation  = "sending_confirmation"
	StateSucceeded            = "succeeded"
	StateDenied               = "denied"
	StateFailed               = "failed"
)

// User-facing failure messages, chosen by substring classification of the
// underlying error.
const (
	MsgCustomerFailed   = "failed to save customer information"
	MsgOrderFailed      = "failed to process order"
	MsgTicketFailed     = "failed to reserve tickets"
	MsgGenericFailed    = "something went wrong, please try again"
	MsgDuplicateOrder   = "this order was already submitted"
	MsgEmptyCart        = "your cart is empty"
	MsgUnknownMerchItem = "one of the items in your cart is no longer available"
)

// CustomerStore is the customer surface of the checkout store.
type CustomerStore interface {
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer models.Customer) error
}

// OrderStore is the order and line-item surface of the checkout store.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) error
	CreateTicketLineItem(ctx context.Context, item models.TicketLineItem) error
	CreateMerchLineItems(ctx context.Context, items []models.MerchLineItem) error
	GetOrderWithItems(ctx context.Context, id string) (*models.OrderWithItems, error)
}

// Availability is the inventory surface checkout consumes: the re-validate
// read, the authoritative tier record for pricing, and the reserve write.
type Availability interface {
	Check(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) inventory.Decision
	Tier(ctx context.Context, eventID int64, ticketType, tierTitle string) (*models.InventoryTier, error)
	Reserve(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) error
}

// EventCatalog resolves event details for pricing and confirmation.
type EventCatalog interface {
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
}

// MerchCatalog resolves merchandise items for authoritative pricing.
type MerchCatalog interface {
	GetMerchItem(ctx context.Context, id int64) (*models.MerchItem, error)
}

// ConfirmationSender delivers the order confirmation. It never returns an
// error: delivery problems are absorbed into the outcome flags.
type ConfirmationSender interface {
	Send(ctx context.Context, payload models.ConfirmationPayload) models.ConfirmationOutcome
}

// OrderGuard blocks duplicate submissions of the same client-generated
// order id.
type OrderGuard interface {
	Acquire(ctx context.Context, orderID string) (bool, error)
	Release(ctx context.Context, orderID string) error
}

// EventPublisher streams finalized orders to downstream consumers.
type EventPublisher interface {
	PublishOrderCreated(order models.Order) error
}

// Result is the outcome of one checkout attempt. State is one of the
// terminal states; Message is user-facing and set on Denied and Failed.
type Result struct {
	State        string                     `json:"state"`
	OrderID      string                     `json:"order_id,omitempty"`
	Message      string                     `json:"message,omitempty"`
	Ticket       *pricing.TicketBreakdown   `json:"ticket_totals,omitempty"`
	Merch        *pricing.MerchBreakdown    `json:"merch_totals,omitempty"`
	Confirmation models.ConfirmationOutcome `json:"confirmation"`
	Snapshot     *models.ConfirmationSnapshot `json:"snapshot,omitempty"`

	// Err is the diagnostic cause on Failed. Not serialized.
	Err error `json:"-"`
}

// Service orchestrates order finalization. Every attempt runs the steps
// strictly in sequence; there is no retry and no rollback of steps that
// already committed (a line-item failure leaves the order row behind).
type Service struct {
	Customers CustomerStore
	Orders    OrderStore
	Inventory Availability
	Events    EventCatalog
	Merch     MerchCatalog
	Sender    ConfirmationSender
	Guard     OrderGuard
	Publisher EventPublisher
	Cfg       config.CheckoutConfig
	Logger    *logger.Logger
}

// FinalizeTicketOrder runs the full ticket checkout sequence.
func (s *Service) FinalizeTicketOrder(ctx context.Context, req models.TicketCheckoutRequest) *Result {
	orderID := req.OrderID
	if orderID == "" {
		orderID = utils.NewOrderID()
	}

	if !s.acquireGuard(ctx, orderID) {
		return &Result{State: StateDenied, OrderID: orderID, Message: MsgDuplicateOrder}
	}

	// Validating
	s.Logger.LogCheckout(StateValidating, orderID, fmt.Sprintf("ticket order for event %d, %d x %s", req.EventID, req.Quantity, req.TierTitle))
	decision := s.Inventory.Check(ctx, req.EventID, req.TicketType, req.TierTitle, req.Quantity)
	if !decision.Admitted {
		s.releaseGuard(ctx, orderID)
		return &Result{State: StateDenied, OrderID: orderID, Message: decision.Reason}
	}

	// Computing. Prices come from the store, never from the request.
	s.Logger.LogCheckout(StateComputing, orderID, "computing totals")
	tier, err := s.Inventory.Tier(ctx, req.EventID, req.TicketType, req.TierTitle)
	if err != nil {
		return s.fail(ctx, orderID, fmt.Errorf("ticket tier lookup: %w", err))
	}
	event, err := s.Events.GetEvent(ctx, req.EventID)
	if err != nil {
		return s.fail(ctx, orderID, fmt.Errorf("event lookup: %w", err))
	}

	includeFood := req.IncludeFoodService && event.FoodServiceAvailable
	totals := pricing.TicketTotals(tier.UnitPrice, req.Quantity, includeFood, event.FoodServicePrice, s.Cfg.ServiceFeeRate)

	// PersistingCustomer
	s.Logger.LogCheckout(StatePersistingCustomer, orderID, "resolving customer "+req.Customer.Email)
	customer, err := s.ensureCustomer(ctx, req.Customer)
	if err != nil {
		return s.fail(ctx, orderID, err)
	}

	// PersistingOrder
	s.Logger.LogCheckout(StatePersistingOrder, orderID, "creating order")
	order := models.Order{
		OrderID:       orderID,
		CustomerID:    customer.ID,
		TotalAmount:   totals.Total,
		PaymentStatus: models.PaymentCompleted,
		Source:        s.Cfg.SourceTag,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return s.fail(ctx, orderID, fmt.Errorf("order create: %w", err))
	}

	// PersistingLineItems. Reserve decrements stock first; a failure here
	// or on the insert leaves the order row orphaned, there is no
	// compensating delete.
	s.Logger.LogCheckout(StatePersistingLineItems, orderID, "reserving and recording tickets")
	if err := s.Inventory.Reserve(ctx, req.EventID, req.TicketType, req.TierTitle, req.Quantity); err != nil {
		return s.fail(ctx, orderID, err)
	}
	lineItem := models.TicketLineItem{
		ID:                  utils.NewLineItemID(),
		OrderID:             orderID,
		EventID:             req.EventID,
		TicketType:          req.TicketType,
		TierTitle:           req.TierTitle,
		Quantity:            req.Quantity,
		UnitPrice:           tier.UnitPrice,
		IncludesFoodService: includeFood,
		FoodServicePrice:    event.FoodServicePrice,
	}
	if err := s.Orders.CreateTicketLineItem(ctx, lineItem); err != nil {
		return s.fail(ctx, orderID, fmt.Errorf("ticket line item create: %w", err))
	}

	// SendingConfirmation. Delivery problems never fail the checkout.
	s.Logger.LogCheckout(StateSendingConfirmation, orderID, "sending confirmation to "+req.Customer.Email)
	payload := models.ConfirmationPayload{
		OrderID:         orderID,
		OrderType:       models.OrderTypeTicket,
		CustomerName:    req.Customer.FullName,
		CustomerEmail:   req.Customer.Email,
		Subtotal:        totals.Subtotal,
		TaxAndFees:      totals.TaxAndFees,
		Total:           totals.Total,
		EventID:         req.EventID,
		EventTitle:      event.Title,
		TicketType:      req.TicketType,
		TierTitle:       req.TierTitle,
		Quantity:        req.Quantity,
		FoodServiceCost: totals.FoodServiceCost,
	}
	outcome := s.Sender.Send(ctx, payload)

	s.publishOrderCreated(order)

	snapshot := &models.ConfirmationSnapshot{
		OrderID:       orderID,
		CustomerName:  req.Customer.FullName,
		CustomerEmail: req.Customer.Email,
		OrderType:     models.OrderTypeTicket,
		EventTitle:    event.Title,
		TierTitle:     req.TierTitle,
		TicketType:    req.TicketType,
		Quantity:      req.Quantity,
		Subtotal:      totals.Subtotal,
		TaxAndFees:    totals.TaxAndFees,
		Total:         totals.Total,
	}

	s.Logger.LogCheckout(StateSucceeded, orderID, "ticket order finalized, total "+pricing.FormatAmount(totals.Total))
	return &Result{
		State:        StateSucceeded,
		OrderID:      orderID,
		Ticket:       &totals,
		Confirmation: outcome,
		Snapshot:     snapshot,
	}
}

// FinalizeMerchOrder runs the full merchandise checkout sequence.
func (s *Service) FinalizeMerchOrder(ctx context.Context, req models.MerchCheckoutRequest) *Result {
	orderID := req.OrderID
	if orderID == "" {
		orderID = utils.NewOrderID()
	}

	if !s.acquireGuard(ctx, orderID) {
		return &Result{State: StateDenied, OrderID: orderID, Message: MsgDuplicateOrder}
	}

	// Validating
	s.Logger.LogCheckout(StateValidating, orderID, fmt.Sprintf("merch order with %d lines", len(req.Lines)))
	if len(req.Lines) == 0 {
		s.releaseGuard(ctx, orderID)
		return &Result{State: StateDenied, OrderID: orderID, Message: MsgEmptyCart}
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			s.releaseGuard(ctx, orderID)
			return &Result{State: StateDenied, OrderID: orderID, Message: inventory.ReasonInvalidQuantity}
		}
	}

	// Computing. Re-resolve every item so a stale client-held price is
	// never charged, and validate the coupon server-side.
	s.Logger.LogCheckout(StateComputing, orderID, "computing totals")
	items := make([]*models.MerchItem, 0, len(req.Lines))
	cartLines := make([]pricing.CartLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		item, err := s.Merch.GetMerchItem(ctx, line.ItemID)
		if err != nil {
			s.releaseGuard(ctx, orderID)
			s.Logger.Error("CHECKOUT", fmt.Sprintf("merch item %d lookup failed for order %s: %v", line.ItemID, orderID, err))
			return &Result{State: StateDenied, OrderID: orderID, Message: MsgUnknownMerchItem}
		}
		if !item.InStock {
			s.releaseGuard(ctx, orderID)
			return &Result{State: StateDenied, OrderID: orderID, Message: fmt.Sprintf("%s is out of stock", item.Name)}
		}
		items = append(items, item)
		cartLines = append(cartLines, pricing.CartLine{UnitPrice: item.UnitPrice, Quantity: line.Quantity})
	}

	shippingFee := 0.0
	if req.DeliveryMethod == models.DeliveryShip {
		shippingFee = s.Cfg.ShippingFee
	}
	var coupon *pricing.Coupon
	if req.CouponCode != "" && strings.EqualFold(req.CouponCode, s.Cfg.CouponCode) {
		coupon = &pricing.Coupon{Discount: s.Cfg.CouponDiscount, MinPurchase: s.Cfg.CouponMinSpend}
	}
	totals := pricing.MerchTotals(cartLines, shippingFee, coupon, s.Cfg.MerchTaxRate)

	// PersistingCustomer
	s.Logger.LogCheckout(StatePersistingCustomer, orderID, "resolving customer "+req.Customer.Email)
	customer, err := s.ensureCustomer(ctx, req.Customer)
	if err != nil {
		return s.fail(ctx, orderID, err)
	}

	// PersistingOrder
	s.Logger.LogCheckout(StatePersistingOrder, orderID, "creating order")
	order := models.Order{
		OrderID:       orderID,
		CustomerID:    customer.ID,
		TotalAmount:   totals.Total,
		PaymentStatus: models.PaymentCompleted,
		Source:        s.Cfg.SourceTag,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return s.fail(ctx, orderID, fmt.Errorf("order create: %w", err))
	}

	// PersistingLineItems
	s.Logger.LogCheckout(StatePersistingLineItems, orderID, "recording merchandise items")
	lineItems := make([]models.MerchLineItem, 0, len(req.Lines))
	for i, line := range req.Lines {
		lineItems = append(lineItems, models.MerchLineItem{
			ID:        utils.NewLineItemID(),
			OrderID:   orderID,
			ItemID:    items[i].ID,
			ItemName:  items[i].Name,
			Quantity:  line.Quantity,
			UnitPrice: items[i].UnitPrice,
			Size:      line.Size,
			Color:     line.Color,
		})
	}
	if err := s.Orders.CreateMerchLineItems(ctx, lineItems); err != nil {
		return s.fail(ctx, orderID, fmt.Errorf("order item create: %w", err))
	}

	// SendingConfirmation
	s.Logger.LogCheckout(StateSendingConfirmation, orderID, "sending confirmation to "+req.Customer.Email)
	summary := itemSummary(lineItems)
	payload := models.ConfirmationPayload{
		OrderID:        orderID,
		OrderType:      models.OrderTypeMerch,
		CustomerName:   req.Customer.FullName,
		CustomerEmail:  req.Customer.Email,
		Subtotal:       totals.DiscountedSubtotal,
		TaxAndFees:     totals.Tax,
		ShippingFee:    totals.ShippingFee,
		Total:          totals.Total,
		ItemSummary:    summary,
		DeliveryMethod: req.DeliveryMethod,
	}
	outcome := s.Sender.Send(ctx, payload)

	s.publishOrderCreated(order)

	snapshot := &models.ConfirmationSnapshot{
		OrderID:       orderID,
		CustomerName:  req.Customer.FullName,
		CustomerEmail: req.Customer.Email,
		OrderType:     models.OrderTypeMerch,
		ItemSummary:   summary,
		Subtotal:      totals.DiscountedSubtotal,
		TaxAndFees:    totals.Tax,
		ShippingFee:   totals.ShippingFee,
		Total:         totals.Total,
	}

	s.Logger.LogCheckout(StateSucceeded, orderID, "merch order finalized, total "+pricing.FormatAmount(totals.Total))
	return &Result{
		State:        StateSucceeded,
		OrderID:      orderID,
		Merch:        &totals,
		Confirmation: outcome,
		Snapshot:     snapshot,
	}
}

// GetConfirmation resolves the data for the confirmation view. The
// authoritative path re-fetches the order with its line items; when that
// misses and the caller carried a snapshot, the snapshot is served
// instead.
func (s *Service) GetConfirmation(ctx context.Context, orderID string, snapshot *models.ConfirmationSnapshot) (*models.ConfirmationView, error) {
	order, err := s.Orders.GetOrderWithItems(ctx, orderID)
	if err == nil {
		return &models.ConfirmationView{Source: "store", Order: order}, nil
	}

	s.Logger.Warn("CHECKOUT", fmt.Sprintf("confirmation fetch for order %s failed: %v", orderID, err))
	if snapshot != nil {
		return &models.ConfirmationView{Source: "snapshot", Snapshot: snapshot}, nil
	}
	return nil, fmt.Errorf("confirmation lookup: %w", err)
}

// ensureCustomer looks the customer up by email and creates the record on
// a miss. The email is the natural key; existing records are reused as-is.
func (s *Service) ensureCustomer(ctx context.Context, details models.CustomerDetails) (*models.Customer, error) {
	existing, err := s.Customers.FindCustomerByEmail(ctx, details.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, checkoutdb.ErrCustomerNotFound) {
		return nil, fmt.Errorf("customer lookup: %w", err)
	}

	customer := models.Customer{
		ID:        utils.NewOrderID(),
		FullName:  details.FullName,
		Email:     details.Email,
		Phone:     details.Phone,
		Birthdate: details.Birthdate,
	}
	if err := s.Customers.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("customer create: %w", err)
	}
	return &customer, nil
}

// fail converts a step error into the absorbing Failed result. The guard
// is released so the shopper can resubmit the attempt.
func (s *Service) fail(ctx context.Context, orderID string, err error) *Result {
	s.Logger.Error("CHECKOUT", fmt.Sprintf("order %s failed: %v", orderID, err))
	s.releaseGuard(ctx, orderID)
	return &Result{
		State:   StateFailed,
		OrderID: orderID,
		Message: classifyError(err),
		Err:     err,
	}
}

// classifyError picks the user-facing message by substring match on the
// wrapped step error.
func classifyError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer"):
		return MsgCustomerFailed
	case strings.Contains(msg, "order"):
		return MsgOrderFailed
	case strings.Contains(msg, "ticket"):
		return MsgTicketFailed
	default:
		return MsgGenericFailed
	}
}

// acquireGuard claims the order id. A guard backend error fails open: the
// guard is convenience protection, not a correctness gate.
func (s *Service) acquireGuard(ctx context.Context, orderID string) bool {
	if s.Guard == nil {
		return true
	}
	ok, err := s.Guard.Acquire(ctx, orderID)
	if err != nil {
		s.Logger.Warn("CHECKOUT", fmt.Sprintf("order guard unavailable for %s: %v", orderID, err))
		return true
	}
	return ok
}

func (s *Service) releaseGuard(ctx context.Context, orderID string) {
	if s.Guard == nil {
		return
	}
	if err := s.Guard.Release(ctx, orderID); err != nil {
		s.Logger.Warn("CHECKOUT", fmt.Sprintf("order guard release failed for %s: %v", orderID, err))
	}
}

// publishOrderCreated streams the finalized order. Best-effort: a broker
// problem is logged and the checkout still succeeds.
func (s *Service) publishOrderCreated(order models.Order) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishOrderCreated(order); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish order %s: %v", order.OrderID, err))
		return
	}
	s.Logger.LogKafka("publish", "order-created", "order "+order.OrderID)
}

func itemSummary(items []models.MerchLineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.ItemName))
	}
	return strings.Join(parts, ", ")
}
