package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/inklore/deckforge/deckforge/config"
	"github.com/inklore/deckforge/deckforge/database/models"
	"github.com/uptrace/bun"
)

type DeckRepository interface {
	Create(ctx context.Context, deck *models.Deck) error
	GetByID(ctx context.Context, id int64) (*models.Deck, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Deck, error)
	Delete(ctx context.Context, id int64) error
}

type deckRepository struct {
	db *bun.DB
}

func NewDeckRepository(db *bun.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, deck *models.Deck) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	deck.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(deck).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}
	return nil
}

func (r *deckRepository) GetByID(ctx context.Context, id int64) (*models.Deck, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	deck := new(models.Deck)
	err := r.db.NewSelect().
		Model(deck).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck %d: %w", id, err)
	}
	return deck, nil
}

func (r *deckRepository) GetRecent(ctx context.Context, limit int) ([]*models.Deck, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var decks []*models.Deck
	err := r.db.NewSelect().
		Model(&decks).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent decks: %w", err)
	}
	return decks, nil
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Deck)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete deck %d: %w", id, err)
	}
	return nil
}
