package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Customer is keyed internally by a UUID but looked up by email, which is
// the natural key the checkout flow uses for lookup-or-create.
type Customer struct {
	bun.BaseModel `bun:"table:customers"`

	ID        string    `bun:"id,pk" json:"id"`
	FullName  string    `bun:"full_name,notnull" json:"full_name"`
	Email     string    `bun:"email,unique,notnull" json:"email"`
	Phone     string    `bun:"phone,nullzero" json:"phone,omitempty"`
	Birthdate string    `bun:"birthdate,nullzero" json:"birthdate,omitempty"`
	Notes     string    `bun:"notes,nullzero" json:"notes,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
