package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/inklore/deckforge/deckforge/config"
	"github.com/inklore/deckforge/deckforge/database/models"
	"github.com/uptrace/bun"
)

const maxBatchSize = 1000

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id string) (*models.Card, error)
	GetByName(ctx context.Context, name string) ([]*models.Card, error)
	GetAll(ctx context.Context) ([]*models.Card, error)
	GetByInk(ctx context.Context, ink string) ([]*models.Card, error)
	GetLegal(ctx context.Context) ([]*models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id string) error
	BulkUpsert(ctx context.Context, cards []*models.Card) (int, error)
	GetCardCount(ctx context.Context) (int64, error)
}

type cardRepository struct {
	db *bun.DB
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(card).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return card, nil
}

func (r *cardRepository) GetByName(ctx context.Context, name string) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("LOWER(name) = LOWER(?)", name).
		Order("cost ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards by name: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) GetByInk(ctx context.Context, ink string) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("ink = ?", ink).
		Order("cost ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards by ink: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) GetLegal(ctx context.Context) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("legality = ?", "legal").
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get legal cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	card.UpdatedAt = time.Now()

	_, err := r.db.NewUpdate().
		Model(card).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", card.ID, err)
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Card)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}

// BulkUpsert inserts or refreshes cards in batches, returning how many
// rows were written. Catalog syncs re-deliver the whole card list, so
// conflicts on the primary key update in place.
func (r *cardRepository) BulkUpsert(ctx context.Context, cards []*models.Card) (int, error) {
	if len(cards) == 0 {
		return 0, nil
	}

	total := 0
	now := time.Now()
	for start := 0; start < len(cards); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(cards) {
			end = len(cards)
		}
		batch := cards[start:end]
		for _, c := range batch {
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
			c.UpdatedAt = now
		}

		res, err := r.db.NewInsert().
			Model(&batch).
			On("CONFLICT (id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("version = EXCLUDED.version").
			Set("cost = EXCLUDED.cost").
			Set("inkwell = EXCLUDED.inkwell").
			Set("ink = EXCLUDED.ink").
			Set("inks = EXCLUDED.inks").
			Set("keywords = EXCLUDED.keywords").
			Set("types = EXCLUDED.types").
			Set("classifications = EXCLUDED.classifications").
			Set("text = EXCLUDED.text").
			Set("lore = EXCLUDED.lore").
			Set("strength = EXCLUDED.strength").
			Set("willpower = EXCLUDED.willpower").
			Set("legality = EXCLUDED.legality").
			Set("max_amount = EXCLUDED.max_amount").
			Set("image_url = EXCLUDED.image_url").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return total, fmt.Errorf("failed to upsert card batch: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += int(n)
		} else {
			total += len(batch)
		}
	}
	return total, nil
}

func (r *cardRepository) GetCardCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return int64(count), nil
}
