package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/inklore/deckforge/deckforge"
	"github.com/inklore/deckforge/deckforge/database"
	"github.com/inklore/deckforge/deckforge/logger"
	"github.com/inklore/deckforge/deckforge/migration"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Imports the legacy MongoDB card catalog into Postgres.
func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	configPath := flag.String("config", "config.toml", "path to config")
	mongoURI := flag.String("mongo-uri", "mongodb://localhost:27017", "legacy MongoDB URI")
	mongoDB := flag.String("mongo-db", "cardtracker", "legacy MongoDB database name")
	collection := flag.String("collection", "cards", "legacy card collection name")
	flag.Parse()

	cfg, err := deckforge.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(-1)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		slog.Error("Failed to connect to legacy MongoDB", slog.Any("error", err))
		os.Exit(-1)
	}
	defer mongoClient.Disconnect(ctx)

	migrator := migration.NewMigrator(db.BunDB())
	migrator.UseMongo(mongoClient, *mongoDB)
	migrator.SetCollectionName(*collection)

	if err := migrator.MigrateCards(ctx); err != nil {
		logger.LogError("Migration failed", err)
		os.Exit(-1)
	}

	logger.LogSystem("Migration completed successfully!")
}
