package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inklore/deckforge/deckforge/cards"
	"github.com/inklore/deckforge/deckforge/database/models"
	"github.com/inklore/deckforge/deckforge/database/repositories"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Migrator imports a legacy MongoDB card catalog into Postgres. The old
// tracker stored one document per card printing; field names drifted over
// the years, so the decoder tolerates both generations.
type Migrator struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	batchSize int
	collName  string

	stats MigrationStats
}

type MigrationStats struct {
	Read      int
	Written   int
	Skipped   int
	StartTime time.Time
}

// legacyCard mirrors the legacy Mongo document shape.
type legacyCard struct {
	ID              string   `bson:"_id"`
	Name            string   `bson:"name"`
	Version         string   `bson:"version,omitempty"`
	Cost            int      `bson:"cost"`
	Inkwell         bool     `bson:"inkwell"`
	Ink             string   `bson:"ink"`
	Inks            []string `bson:"inks,omitempty"`
	Keywords        []string `bson:"keywords,omitempty"`
	Types           []string `bson:"types,omitempty"`
	Type            string   `bson:"type,omitempty"` // oldest documents held a single type
	Classifications []string `bson:"classifications,omitempty"`
	Text            string   `bson:"text"`
	ImageURI        string   `bson:"image_uri,omitempty"`
	Lore            int      `bson:"lore"`
	Strength        int      `bson:"strength"`
	Willpower       int      `bson:"willpower"`
	Legality        string   `bson:"legality,omitempty"`
	MaxAmount       int      `bson:"maxAmount,omitempty"`
}

func NewMigrator(pgDB *bun.DB) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		batchSize: 1000,
		collName:  "cards",
		stats:     MigrationStats{StartTime: time.Now()},
	}
}

// UseMongo connects the migrator to the legacy database.
func (m *Migrator) UseMongo(client *mongo.Client, dbName string) {
	m.mongoDB = client.Database(dbName)
}

// SetBatchSize overrides the default batch size for inserts
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// SetCollectionName overrides the legacy collection name
func (m *Migrator) SetCollectionName(name string) {
	if name != "" {
		m.collName = name
	}
}

// MigrateCards streams the legacy collection into the Postgres cards
// table in batches.
func (m *Migrator) MigrateCards(ctx context.Context) error {
	if m.mongoDB == nil {
		return fmt.Errorf("mongoDB not configured; call UseMongo first")
	}

	logProgress("Starting legacy card migration")

	repo := repositories.NewCardRepository(m.pgDB)
	coll := m.mongoDB.Collection(m.collName)

	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetBatchSize(int32(m.batchSize)))
	if err != nil {
		return fmt.Errorf("failed to query legacy cards: %w", err)
	}
	defer cursor.Close(ctx)

	batch := make([]*models.Card, 0, m.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		written, err := repo.BulkUpsert(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to write card batch: %w", err)
		}
		m.stats.Written += written
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var legacy legacyCard
		if err := cursor.Decode(&legacy); err != nil {
			m.stats.Skipped++
			slog.Warn("Skipping undecodable legacy card",
				slog.String("type", "db"),
				slog.Any("error", err))
			continue
		}
		m.stats.Read++

		batch = append(batch, m.convert(legacy))
		if len(batch) >= m.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("legacy cursor failed: %w", err)
	}
	if err := flush(); err != nil {
		return err
	}

	logProgress(fmt.Sprintf("Legacy card migration complete: %d read, %d written, %d skipped (took %s)",
		m.stats.Read, m.stats.Written, m.stats.Skipped, time.Since(m.stats.StartTime).Round(time.Millisecond)))
	return nil
}

func (m *Migrator) convert(legacy legacyCard) *models.Card {
	types := legacy.Types
	if len(types) == 0 && legacy.Type != "" {
		types = []string{legacy.Type}
	}
	inks := legacy.Inks
	if len(inks) == 0 && legacy.Ink != "" {
		inks = []string{legacy.Ink}
	}
	legality := legacy.Legality
	if legality == "" {
		legality = string(cards.LegalityLegal)
	}
	maxAmount := legacy.MaxAmount
	if maxAmount == 0 {
		maxAmount = cards.DefaultMaxCopies
	}

	return &models.Card{
		ID:              legacy.ID,
		Name:            legacy.Name,
		Version:         legacy.Version,
		Cost:            legacy.Cost,
		Inkwell:         legacy.Inkwell,
		Ink:             legacy.Ink,
		Inks:            inks,
		Keywords:        legacy.Keywords,
		Types:           types,
		Classifications: legacy.Classifications,
		Text:            legacy.Text,
		Lore:            legacy.Lore,
		Strength:        legacy.Strength,
		Willpower:       legacy.Willpower,
		Legality:        legality,
		MaxAmount:       maxAmount,
		ImageURL:        legacy.ImageURI,
	}
}

func (m *Migrator) Stats() MigrationStats {
	return m.stats
}

func logProgress(msg string) {
	slog.Info(msg, slog.String("type", "db"))
}
