package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ticket type categories grouping tiers within an event.
const (
	TicketTypeGeneral = "general"
	TicketTypeVIP     = "vip"
	TicketTypePremium = "premium"
)

// InventoryTier is one purchasable ticket tier for one event. The tier title
// is unique within event+type. AvailableQuantity is the mutable remaining
// count; the invariant available <= initial is trusted, not enforced here.
type InventoryTier struct {
	bun.BaseModel `bun:"table:inventory_tiers"`

	ID                int64     `bun:"id,pk,autoincrement" json:"id"`
	EventID           int64     `bun:"event_id,notnull" json:"event_id"`
	TicketType        string    `bun:"ticket_type,notnull" json:"ticket_type"`
	Title             string    `bun:"title,notnull" json:"title"`
	UnitPrice         float64   `bun:"unit_price,notnull" json:"unit_price"`
	InitialQuantity   int       `bun:"initial_quantity,notnull" json:"initial_quantity"`
	AvailableQuantity int       `bun:"available_quantity,notnull" json:"available_quantity"`
	Active            bool      `bun:"active,notnull" json:"active"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
