package models

import (
	"time"

	"github.com/uptrace/bun"
)

type MerchItem struct {
	bun.BaseModel `bun:"table:merch_items"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	Category    string    `bun:"category,nullzero" json:"category,omitempty"`
	UnitPrice   float64   `bun:"unit_price,notnull" json:"unit_price"`
	ImageURL    string    `bun:"image_url,nullzero" json:"image_url,omitempty"`
	InStock     bool      `bun:"in_stock,notnull" json:"in_stock"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
