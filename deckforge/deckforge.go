package deckforge

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/inklore/deckforge/deckforge/cards"
	"github.com/inklore/deckforge/deckforge/catalog"
	"github.com/inklore/deckforge/deckforge/database"
	"github.com/inklore/deckforge/deckforge/database/repositories"
	"github.com/inklore/deckforge/deckforge/generator"
	"github.com/inklore/deckforge/deckforge/services"
)

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

// App wires the catalog, the generator, and the Discord surface together.
// Catalog is the analyzed in-memory card list; it is written once at
// startup and read-only afterwards.
type App struct {
	Cfg            Config
	Client         bot.Client
	Paginator      *paginator.Manager
	Version        string
	Commit         string
	DB             *database.DB
	CardRepository repositories.CardRepository
	DeckRepository repositories.DeckRepository
	CatalogSync    *catalog.SyncService
	SpacesService  *services.SpacesService
	SearchService  *services.SearchService
	Catalog        []*cards.Card
	Generator      *generator.Generator
}

func (a *App) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(a.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(a.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	a.Client = client
	return nil
}

func (a *App) OnReady(_ *events.Ready) {
	slog.Info("deckforge is now ready",
		slog.String("version", a.Version),
		slog.String("commit", a.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Client.SetPresence(ctx,
		gateway.WithListeningActivity("shuffling 60 cards"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
