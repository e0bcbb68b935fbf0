package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Card is the persisted form of one catalog record, as delivered by the
// remote catalog service.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID              string    `bun:"id,pk"` // Catalog ID is the primary key
	Name            string    `bun:"name,notnull"`
	Version         string    `bun:"version"`
	Cost            int       `bun:"cost,notnull"`
	Inkwell         bool      `bun:"inkwell,notnull"`
	Ink             string    `bun:"ink,notnull"`
	Inks            []string  `bun:"inks,type:jsonb"`
	Keywords        []string  `bun:"keywords,type:jsonb"`
	Types           []string  `bun:"types,type:jsonb"`
	Classifications []string  `bun:"classifications,type:jsonb"`
	Text            string    `bun:"text"`
	Lore            int       `bun:"lore"`
	Strength        int       `bun:"strength"`
	Willpower       int       `bun:"willpower"`
	Legality        string    `bun:"legality,notnull"`
	MaxAmount       int       `bun:"max_amount,notnull,default:4"`
	ImageURL        string    `bun:"image_url"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,notnull"`
}
