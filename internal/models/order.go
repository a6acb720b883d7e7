package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Payment status markers. There is no payment gateway behind this flow:
// orders are inserted with PaymentCompleted directly. Widening this into a
// pending/authorized/captured lifecycle is a known follow-up if a real
// processor is ever wired in.
const (
	PaymentCompleted = "completed"
)

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	OrderID       string    `bun:"order_id,pk" json:"order_id"`
	CustomerID    string    `bun:"customer_id,notnull" json:"customer_id"`
	TotalAmount   float64   `bun:"total_amount,notnull" json:"total_amount"`
	PaymentStatus string    `bun:"payment_status,notnull" json:"payment_status"`
	Source        string    `bun:"source,nullzero" json:"source,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type TicketLineItem struct {
	bun.BaseModel `bun:"table:ticket_line_items"`

	ID                  string    `bun:"id,pk" json:"id"`
	OrderID             string    `bun:"order_id,notnull" json:"order_id"`
	EventID             int64     `bun:"event_id,notnull" json:"event_id"`
	TicketType          string    `bun:"ticket_type,notnull" json:"ticket_type"`
	TierTitle           string    `bun:"tier_title,notnull" json:"tier_title"`
	Quantity            int       `bun:"quantity,notnull" json:"quantity"`
	UnitPrice           float64   `bun:"unit_price,notnull" json:"unit_price"`
	IncludesFoodService bool      `bun:"includes_food_service,nullzero" json:"includes_food_service"`
	FoodServicePrice    float64   `bun:"food_service_price,nullzero" json:"food_service_price,omitempty"`
	PurchasedAt         time.Time `bun:"purchased_at,notnull,default:current_timestamp" json:"purchased_at"`
}

type MerchLineItem struct {
	bun.BaseModel `bun:"table:merch_line_items"`

	ID          string    `bun:"id,pk" json:"id"`
	OrderID     string    `bun:"order_id,notnull" json:"order_id"`
	ItemID      int64     `bun:"item_id,notnull" json:"item_id"`
	ItemName    string    `bun:"item_name,notnull" json:"item_name"`
	Quantity    int       `bun:"quantity,notnull" json:"quantity"`
	UnitPrice   float64   `bun:"unit_price,notnull" json:"unit_price"`
	Size        string    `bun:"size,nullzero" json:"size,omitempty"`
	Color       string    `bun:"color,nullzero" json:"color,omitempty"`
	PurchasedAt time.Time `bun:"purchased_at,notnull,default:current_timestamp" json:"purchased_at"`
}

// OrderWithItems combines an order with its line items for the confirmation
// view. An order carries either ticket or merchandise items, never both.
type OrderWithItems struct {
	Order       Order           `json:"order"`
	Tickets     []TicketLineItem `json:"tickets,omitempty"`
	Merchandise []MerchLineItem  `json:"merchandise,omitempty"`
}
