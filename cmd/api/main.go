package main

import (
	"context"

	"github.com/chorok-lab/carbon-exchange/internal/config"
	"github.com/chorok-lab/carbon-exchange/internal/db"
	"github.com/chorok-lab/carbon-exchange/internal/identity"
	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/chorok-lab/carbon-exchange/internal/repository"
	"github.com/chorok-lab/carbon-exchange/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	deps := server.Deps{
		AllowedOrigin: cfg.AllowedOrigin,
		SHA:           gitSHA,
		BuildTime:     buildTime,
	}

	if cfg.DBConfigured() {
		conn, err := db.Connect(cfg)
		if err != nil {
			logger.Fatal("connect db", zap.Error(err))
		}
		if err := conn.AutoMigrate(&model.Profile{}, &model.Listing{}, &model.Transaction{}); err != nil {
			logger.Fatal("auto migrate", zap.Error(err))
		}
		deps.ListingRepo = repository.NewListingRepository(conn)
		deps.TxRepo = repository.NewTransactionRepository(conn)
		deps.ProfileRepo = repository.NewProfileRepository(conn)
	} else {
		logger.Warn("DB_HOST not set; using in-memory store, data will not survive restarts")
		deps.ListingRepo = repository.NewMemoryListingRepository()
		deps.TxRepo = repository.NewMemoryTransactionRepository()
		deps.ProfileRepo = repository.NewMemoryProfileRepository()
	}

	if cfg.FirebaseConfigured() {
		provider, err := identity.NewFirebaseProvider(context.Background(), cfg.FirebaseProjectID, cfg.FirebaseWebAPIKey)
		if err != nil {
			logger.Fatal("init firebase", zap.Error(err))
		}
		deps.Provider = provider
	} else {
		logger.Warn("Firebase not configured; using in-memory identity provider")
		deps.Provider = identity.NewMemoryProvider()
	}

	srv := server.New(deps)
	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr), zap.String("git_sha", gitSHA))
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
