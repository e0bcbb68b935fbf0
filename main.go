package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/inklore/deckforge/deckforge"
	"github.com/inklore/deckforge/deckforge/catalog"
	"github.com/inklore/deckforge/deckforge/commands"
	"github.com/inklore/deckforge/deckforge/config"
	"github.com/inklore/deckforge/deckforge/database"
	"github.com/inklore/deckforge/deckforge/database/repositories"
	"github.com/inklore/deckforge/deckforge/generator"
	"github.com/inklore/deckforge/deckforge/handlers"
	"github.com/inklore/deckforge/deckforge/logger"
	"github.com/inklore/deckforge/deckforge/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Initialize custom logger
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting deckforge",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	shouldSyncCatalog := flag.Bool("sync-catalog", false, "Whether to refresh the card catalog on startup")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := deckforge.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	defer db.Close()

	a := deckforge.New(*cfg, version, commit)
	a.DB = db

	// Initialize repositories
	a.CardRepository = repositories.NewCardRepository(db.BunDB())
	a.DeckRepository = repositories.NewDeckRepository(db.BunDB())

	// Initialize Spaces image mirror
	a.SpacesService = services.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.CardRoot,
	)

	// Catalog sync + load. The analyzer runs inside Load, before any
	// generation is possible.
	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.PageSize)
	a.CatalogSync = catalog.NewSyncService(client, a.CardRepository)

	if *shouldSyncCatalog {
		syncCtx, syncCancel := context.WithTimeout(context.Background(), config.CatalogSyncTimeout)
		written, err := a.CatalogSync.Sync(syncCtx)
		syncCancel()
		if err != nil {
			slog.Error("Catalog sync failed", slog.Any("error", err))
			os.Exit(-1)
		}
		slog.Info("Catalog refreshed", slog.Int("cards", written))

		if cfg.Spaces.Bucket != "" {
			mirrorCtx, mirrorCancel := context.WithTimeout(context.Background(), config.CatalogSyncTimeout)
			mirrored, err := a.CatalogSync.MirrorImages(mirrorCtx, a.SpacesService)
			mirrorCancel()
			if err != nil {
				slog.Error("Card image mirroring failed", slog.Any("error", err))
			} else {
				slog.Info("Card images mirrored", slog.Int("images", mirrored))
			}
		}
	}

	a.Catalog, err = a.CatalogSync.Load(ctx)
	if err != nil {
		slog.Error("Failed to load card catalog", slog.Any("error", err))
		os.Exit(-1)
	}
	if len(a.Catalog) == 0 {
		slog.Error("Card catalog is empty; run with -sync-catalog first")
		os.Exit(-1)
	}
	slog.Info("Card catalog loaded",
		slog.Int("cards", len(a.Catalog)))

	a.SearchService = services.NewSearchService(a.Catalog)

	// Generator setup
	genCfg := generator.DefaultConfig()
	if cfg.Generator.MaxTries > 0 {
		genCfg.MaxTries = cfg.Generator.MaxTries
	}
	if cfg.Generator.MaxSingletons > 0 {
		genCfg.MaxSingletons = cfg.Generator.MaxSingletons
	}
	weightCfg := generator.DefaultWeightConfig()
	weightCfg.MaxTries = genCfg.MaxTries
	a.Generator = generator.NewGenerator(a.Catalog, generator.NewCalculator(weightCfg), genCfg)

	logger.LogSystem("Deck generator initialized",
		slog.String("component", "generator"),
		slog.Int("max_tries", genCfg.MaxTries),
		slog.String("status", "success"))

	h := handler.New()

	// System commands
	h.Command("/version", commands.VersionHandler(a))

	// Deck and card commands
	h.Command("/builddeck", handlers.WrapWithLogging("builddeck", commands.BuildDeckHandler(a)))
	h.Command("/searchcards", handlers.WrapWithLogging("searchcards", commands.SearchCardsHandler(a)))
	h.Command("/recentdecks", handlers.WrapWithLogging("recentdecks", commands.RecentDecksHandler(a)))

	if err = a.SetupBot(h, bot.NewListenerFunc(a.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(a.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = a.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("deckforge is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down...")
}
