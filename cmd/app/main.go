package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ibcplay/ibcplay/internal/auth"
	"github.com/ibcplay/ibcplay/internal/betting"
	"github.com/ibcplay/ibcplay/internal/bootstrap"
	"github.com/ibcplay/ibcplay/internal/casino"
	"github.com/ibcplay/ibcplay/internal/config"
	"github.com/ibcplay/ibcplay/internal/database"
	"github.com/ibcplay/ibcplay/internal/games"
	"github.com/ibcplay/ibcplay/internal/ledger"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/server"
	"github.com/ibcplay/ibcplay/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	dbPool, err := database.NewPool(cfg.GetDBConnString(),
		bootstrap.DBMaxConnections, bootstrap.DBMaxConnIdleTime, bootstrap.DBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), bootstrap.MigrationTimeout)
	if err := database.Migrate(migrateCtx, dbPool); err != nil {
		cancelMigrate()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancelMigrate()

	repos := bootstrap.InitializeRepositories(dbPool)

	priceService := prices.NewService(cfg.CoinGeckoURL, cfg.CoinGeckoAPIKey, cfg.PriceCacheTTL, cfg.PriceTimeout)
	ledgerService := ledger.NewService(repos.Ledger, priceService)
	casinoService := casino.NewService(repos.Rounds, ledgerService, games.NewEngine(), priceService)
	bettingService := betting.NewService(repos.Bets, ledgerService)
	userService := user.NewService(repos.Users, ledgerService)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	// Finish rounds interrupted by a previous crash before taking traffic
	recoveryCtx, cancelRecovery := context.WithTimeout(context.Background(), bootstrap.RecoveryRunTimeout)
	if err := casinoService.RecoverUnsettled(recoveryCtx); err != nil {
		logger.FromContext(recoveryCtx).Error("Startup recovery pass failed", "error", err)
	}
	cancelRecovery()

	srv := server.NewServer(cfg.Port, nil, tokens, dbPool,
		userService, ledgerService, casinoService, bettingService, priceService)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		DBPool: dbPool,
	})
}

// initLogger installs the process default logger from app configuration
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.Init(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	), nil)
}
