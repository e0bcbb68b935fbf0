package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/inklore/deckforge/deckforge/config"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// CardRecord is the wire format of one catalog entry as served by the
// remote card API.
type CardRecord struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Version         string   `json:"version,omitempty"`
	Cost            int      `json:"cost"`
	Inkwell         bool     `json:"inkwell"`
	Ink             string   `json:"ink"`
	Inks            []string `json:"inks,omitempty"`
	Keywords        []string `json:"keywords"`
	Types           []string `json:"type"`
	Classifications []string `json:"classifications"`
	Text            string   `json:"text"`
	ImageURI        string   `json:"image_uri,omitempty"`
	Lore            int      `json:"lore"`
	Strength        int      `json:"strength"`
	Willpower       int      `json:"willpower"`
	Legality        string   `json:"legality"`
	MaxAmount       int      `json:"maxAmount,omitempty"`
}

type page struct {
	Cards      []CardRecord `json:"cards"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

// Client fetches card records from the catalog service.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
}

func NewClient(baseURL string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = config.DefaultCatalogPageSize
	}
	return &Client{
		baseURL:  baseURL,
		pageSize: pageSize,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchAll downloads the whole catalog. The first page reveals the page
// count; the rest are fetched concurrently under a small semaphore so slow
// catalog mirrors are not hammered.
func (c *Client) FetchAll(ctx context.Context) ([]CardRecord, error) {
	start := time.Now()

	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page 1: %w", err)
	}

	records := make([][]CardRecord, first.TotalPages)
	records[0] = first.Cards

	if first.TotalPages > 1 {
		sem := semaphore.NewWeighted(config.MaxConcurrentPages)
		g, gctx := errgroup.WithContext(ctx)
		var mu sync.Mutex

		for n := 2; n <= first.TotalPages; n++ {
			n := n
			g.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)

				p, err := c.fetchPage(gctx, n)
				if err != nil {
					return fmt.Errorf("failed to fetch catalog page %d: %w", n, err)
				}
				mu.Lock()
				records[n-1] = p.Cards
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var all []CardRecord
	for _, page := range records {
		all = append(all, page...)
	}

	slog.Debug("Catalog fetched",
		slog.String("type", "sys"),
		slog.Int("cards", len(all)),
		slog.Int("pages", first.TotalPages),
		slog.Duration("took", time.Since(start)))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, n int) (*page, error) {
	u, err := url.Parse(c.baseURL + "/cards")
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	q := u.Query()
	q.Set("page", fmt.Sprintf("%d", n))
	q.Set("page_size", fmt.Sprintf("%d", c.pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode catalog page: %w", err)
	}
	if p.TotalPages == 0 {
		p.TotalPages = 1
	}
	return &p, nil
}
