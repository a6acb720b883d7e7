package models

// CustomerDetails is the customer block submitted with every checkout.
type CustomerDetails struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
}

// TicketCheckoutRequest finalizes a ticket order. OrderID is generated
// client-side before submission; the server fills one in when it is absent.
type TicketCheckoutRequest struct {
	OrderID            string          `json:"order_id"`
	Customer           CustomerDetails `json:"customer"`
	EventID            int64           `json:"event_id"`
	TicketType         string          `json:"ticket_type"`
	TierTitle          string          `json:"tier_title"`
	Quantity           int             `json:"quantity"`
	IncludeFoodService bool            `json:"include_food_service"`
}

type MerchCartLine struct {
	ItemID   int64  `json:"item_id"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
}

// Delivery methods for merchandise orders. Shipping is a flat fee applied
// only when the method is "ship".
const (
	DeliveryShip   = "ship"
	DeliveryPickup = "pickup"
)

type MerchCheckoutRequest struct {
	OrderID        string          `json:"order_id"`
	Customer       CustomerDetails `json:"customer"`
	Lines          []MerchCartLine `json:"lines"`
	DeliveryMethod string          `json:"delivery_method"`
	CouponCode     string          `json:"coupon_code,omitempty"`
}

// ConfirmationSnapshot is the parameter-encoded fallback for the
// confirmation view: if the authoritative re-fetch by order id fails, the
// view renders from this snapshot instead.
type ConfirmationSnapshot struct {
	OrderID       string  `json:"order_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	OrderType     string  `json:"order_type"`
	EventTitle    string  `json:"event_title,omitempty"`
	TierTitle     string  `json:"tier_title,omitempty"`
	TicketType    string  `json:"ticket_type,omitempty"`
	Quantity      int     `json:"quantity,omitempty"`
	ItemSummary   string  `json:"item_summary,omitempty"`
	Subtotal      float64 `json:"subtotal"`
	TaxAndFees    float64 `json:"tax_and_fees"`
	ShippingFee   float64 `json:"shipping_fee,omitempty"`
	Total         float64 `json:"total"`
}

// ConfirmationView is what the confirmation page renders. Source records
// which data path produced it: "store" for the authoritative re-fetch,
// "snapshot" for the fallback.
type ConfirmationView struct {
	Source   string                `json:"source"`
	Order    *OrderWithItems       `json:"order,omitempty"`
	Snapshot *ConfirmationSnapshot `json:"snapshot,omitempty"`
}
