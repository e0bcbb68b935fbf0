package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Deck is a generated deck saved for later export. CardIDs is the ordered
// multiset of catalog IDs, duplicates included.
type Deck struct {
	bun.BaseModel `bun:"table:decks,alias:d"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Inks      []string  `bun:"inks,type:jsonb"`
	Archetype string    `bun:"archetype,notnull"`
	CardIDs   []string  `bun:"card_ids,type:jsonb"`
	Complete  bool      `bun:"complete,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
