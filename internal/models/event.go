package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID                   int64     `bun:"id,pk,autoincrement" json:"id"`
	Title                string    `bun:"title,notnull" json:"title"`
	Description          string    `bun:"description,nullzero" json:"description,omitempty"`
	Venue                string    `bun:"venue,nullzero" json:"venue,omitempty"`
	StartsAt             time.Time `bun:"starts_at,notnull" json:"starts_at"`
	EndsAt               time.Time `bun:"ends_at,nullzero" json:"ends_at,omitempty"`
	FoodServiceAvailable bool      `bun:"food_service_available,nullzero" json:"food_service_available"`
	FoodServicePrice     float64   `bun:"food_service_price,nullzero" json:"food_service_price,omitempty"`
	SoldOut              bool      `bun:"sold_out,nullzero" json:"sold_out"`
	CreatedAt            time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
