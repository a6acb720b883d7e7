package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Site content records managed through the admin back office.

type Testimonial struct {
	bun.BaseModel `bun:"table:testimonials"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Author    string    `bun:"author,notnull" json:"author"`
	Quote     string    `bun:"quote,notnull" json:"quote"`
	Rating    int       `bun:"rating,nullzero" json:"rating,omitempty"`
	Published bool      `bun:"published,notnull" json:"published"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type FAQ struct {
	bun.BaseModel `bun:"table:faqs"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Question string `bun:"question,notnull" json:"question"`
	Answer   string `bun:"answer,notnull" json:"answer"`
	Position int    `bun:"position,nullzero" json:"position"`
}

type GalleryImage struct {
	bun.BaseModel `bun:"table:gallery_images"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Title    string `bun:"title,nullzero" json:"title,omitempty"`
	URL      string `bun:"url,notnull" json:"url"`
	Position int    `bun:"position,nullzero" json:"position"`
}
