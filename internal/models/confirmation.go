package models

// Order type tags carried on confirmation payloads.
const (
	OrderTypeTicket = "ticket"
	OrderTypeMerch  = "merchandise"
)

// ConfirmationPayload is the request body for the remote confirmation
// function. Ticket orders carry event details and may carry a generated PDF
// ticket; merchandise orders carry an item summary and delivery info.
type ConfirmationPayload struct {
	OrderID       string  `json:"order_id"`
	OrderType     string  `json:"order_type"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	Subtotal      float64 `json:"subtotal"`
	TaxAndFees    float64 `json:"tax_and_fees"`
	ShippingFee   float64 `json:"shipping_fee,omitempty"`
	Total         float64 `json:"total"`

	// Ticket orders
	EventID          int64   `json:"event_id,omitempty"`
	EventTitle       string  `json:"event_title,omitempty"`
	TicketType       string  `json:"ticket_type,omitempty"`
	TierTitle        string  `json:"tier_title,omitempty"`
	Quantity         int     `json:"quantity,omitempty"`
	FoodServiceCost  float64 `json:"food_service_cost,omitempty"`

	// Merchandise orders
	ItemSummary    string `json:"item_summary,omitempty"`
	DeliveryMethod string `json:"delivery_method,omitempty"`

	// Base64-encoded PDF ticket, attached by the sender for ticket orders.
	AttachmentPDF string `json:"attachment_pdf,omitempty"`
}

// ConfirmationResult is the remote function's response shape.
type ConfirmationResult struct {
	Success    bool   `json:"success"`
	Simulation bool   `json:"simulation,omitempty"`
	ID         string `json:"id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ConfirmationOutcome is the adapter's verdict as the checkout flow sees
// it. SimulatedEmail counts as success for user-facing purposes; EmailError
// never fails the checkout.
type ConfirmationOutcome struct {
	EmailSent      bool `json:"email_sent"`
	SimulatedEmail bool `json:"simulated_email"`
	EmailError     bool `json:"email_error"`
}
