// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/resteel-cart/internal/config"
	"github.com/your-org/resteel-cart/internal/domain/cart"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
	"github.com/your-org/resteel-cart/internal/infrastructure/database/postgres"
	"github.com/your-org/resteel-cart/internal/infrastructure/database/redis"
	"github.com/your-org/resteel-cart/internal/infrastructure/storage"
	"github.com/your-org/resteel-cart/internal/interfaces/http"
	"github.com/your-org/resteel-cart/internal/pkg/logger"
	"github.com/your-org/resteel-cart/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Health(); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	// Connect to Redis when cart storage or rate limiting needs it
	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient, err = redis.NewConnection(cfg, log)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		if err := redisClient.Health(); err != nil {
			log.Fatalf("Redis health check failed: %v", err)
		}
	}

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB(), log)

	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		log.Warnf("Index creation failed: %v", err)
	}

	// Seed initial data in development
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			log.Warnf("Data seeding failed: %v", err)
		}
		if err := migration.GetTableInfo(); err != nil {
			log.Warnf("Failed to read table info: %v", err)
		}
	}

	cartStorage, err := newCartStorage(cfg, db, redisClient)
	if err != nil {
		log.Fatalf("Failed to set up cart storage: %v", err)
	}
	log.WithField("driver", cfg.Cart.StorageDriver).Info("Cart storage ready")

	sessions := cart.NewSessions(cartStorage, cfg.Cart.StorageKey, log)

	deps := http.Dependencies{
		DB:       db.GetDB(),
		Sessions: sessions,
		Catalog:  catalog.NewService(db.GetDB()),
		Quotes:   pdf.NewService(cfg),
	}
	if redisClient != nil {
		deps.Redis = redisClient.GetClient()
	}

	log.Info("✅ All systems operational!")

	ctx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sweepSessions(ctx, sessions, cfg, log)

	// Create and start HTTP server
	server := http.NewServer(cfg, log, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("👋 Shutting down gracefully...")
	stopSweeper()

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Info("✅ Server shutdown completed")
}

// newCartStorage picks the durable cart storage named by CART_STORAGE_DRIVER.
// The "none" driver yields a nil Storage and carts live in memory only.
func newCartStorage(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) (cart.Storage, error) {
	switch cfg.Cart.StorageDriver {
	case config.StorageDriverRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis cart storage requires a redis connection")
		}
		return redis.NewCartStorage(redisClient.GetClient(), cfg.Cart.StorageTTL), nil
	case config.StorageDriverPostgres:
		return postgres.NewCartStorage(db.GetDB()), nil
	case config.StorageDriverFile:
		fileStorage, err := storage.NewFile(cfg.Cart.FilePath)
		if err != nil {
			return nil, err
		}
		return fileStorage, nil
	case config.StorageDriverMemory:
		return storage.NewMemory(), nil
	case config.StorageDriverNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cart storage driver %q", cfg.Cart.StorageDriver)
	}
}

func sweepSessions(ctx context.Context, sessions *cart.Sessions, cfg *config.Config, log logrus.FieldLogger) {
	if cfg.Cart.SweepInterval <= 0 || cfg.Cart.SessionIdle <= 0 {
		return
	}

	ticker := time.NewTicker(cfg.Cart.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(cfg.Cart.SessionIdle); n > 0 {
				log.WithField("active", sessions.Len()).Debug("Cart sessions swept")
			}
		}
	}
}
