package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fancards/fancards-go/internal/burn"
	"github.com/fancards/fancards-go/internal/card"
	"github.com/fancards/fancards-go/internal/catalog"
	"github.com/fancards/fancards-go/internal/config"
	"github.com/fancards/fancards-go/internal/cooldown"
	"github.com/fancards/fancards-go/internal/database"
	"github.com/fancards/fancards-go/internal/database/postgres"
	"github.com/fancards/fancards-go/internal/drop"
	"github.com/fancards/fancards-go/internal/economy"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/progression"
	"github.com/fancards/fancards-go/internal/server"
	"github.com/fancards/fancards-go/internal/user"
	"github.com/fancards/fancards-go/internal/utils"
	"github.com/fancards/fancards-go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Repositories
	playerRepo := postgres.NewPlayerRepository(pool)
	cardRepo := postgres.NewCardRepository(pool)
	economyRepo := postgres.NewEconomyRepository(pool)
	levelRepo := postgres.NewLevelRepository(pool)

	// Card catalog and generator
	cat, err := catalog.Load(config.ConfigPathCharacters)
	if err != nil {
		log.Fatalf("Failed to load character catalog: %v", err)
	}
	generator := card.NewGenerator(cat, utils.RandomFloat)

	// Services
	economyService := economy.NewService(economyRepo)
	userService := user.NewService(playerRepo, cardRepo, levelRepo, economyService)
	progressionService := progression.NewService(levelRepo)
	cooldownService := cooldown.NewPostgresService(pool, cooldown.Config{})

	registry := drop.NewRegistry()
	dropService := drop.NewService(registry, generator, cooldownService, userService, cardRepo, levelRepo)
	burnService := burn.NewService(userService, cardRepo)
	collectionService := card.NewCollectionService(userService, cardRepo)

	// Background sweep of expired drop sessions
	janitor := worker.NewJanitor(registry, worker.DefaultSweepInterval)
	janitor.Start(context.Background())

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Services{
		DBPool:      pool,
		Users:       userService,
		Economy:     economyService,
		Progression: progressionService,
		Drops:       dropService,
		Burns:       burnService,
		Collection:  collectionService,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if err := janitor.Shutdown(ctx); err != nil {
		logger.Error("Janitor shutdown failed", "error", err)
	}
}
