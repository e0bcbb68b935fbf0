package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/inklore/deckforge/deckforge/cards"
	"github.com/inklore/deckforge/deckforge/config"
	"github.com/inklore/deckforge/deckforge/database/models"
	"github.com/inklore/deckforge/deckforge/database/repositories"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// SyncService keeps the local card table in step with the remote catalog
// and hands out the analyzed in-memory catalog used by generation.
type SyncService struct {
	client *Client
	repo   repositories.CardRepository
}

func NewSyncService(client *Client, repo repositories.CardRepository) *SyncService {
	return &SyncService{client: client, repo: repo}
}

// Sync downloads the remote catalog and upserts it into Postgres. Returns
// the number of rows written.
func (s *SyncService) Sync(ctx context.Context) (int, error) {
	start := time.Now()

	records, err := s.client.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("catalog fetch failed: %w", err)
	}

	rows := make([]*models.Card, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ToModel(rec))
	}

	written, err := s.repo.BulkUpsert(ctx, rows)
	if err != nil {
		return written, fmt.Errorf("catalog upsert failed: %w", err)
	}

	slog.Info("Catalog synced",
		slog.String("type", "db"),
		slog.Int("cards", written),
		slog.Duration("took", time.Since(start)))
	return written, nil
}

// ImageMirror copies a card image to durable storage.
type ImageMirror interface {
	MirrorCardImage(ctx context.Context, cardID, imageURL string) error
}

// MirrorImages copies every stored card's art into the mirror, with the
// same concurrency cap as page fetching. Cards without art are skipped;
// individual failures are logged and do not stop the rest.
func (s *SyncService) MirrorImages(ctx context.Context, mirror ImageMirror) (int, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("catalog load failed: %w", err)
	}

	sem := semaphore.NewWeighted(config.MaxConcurrentPages)
	g, gctx := errgroup.WithContext(ctx)
	var mirrored atomic.Int64

	for _, row := range rows {
		if row.ImageURL == "" {
			continue
		}
		row := row
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			if err := mirror.MirrorCardImage(gctx, row.ID, row.ImageURL); err != nil {
				slog.Warn("Failed to mirror card image",
					slog.String("type", "sys"),
					slog.String("card_id", row.ID),
					slog.Any("error", err))
				return nil
			}
			mirrored.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(mirrored.Load()), err
	}
	return int(mirrored.Load()), nil
}

// Load reads every stored card and returns the analyzed domain catalog.
func (s *SyncService) Load(ctx context.Context) ([]*cards.Card, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog load failed: %w", err)
	}
	return ToDomainAll(rows), nil
}
