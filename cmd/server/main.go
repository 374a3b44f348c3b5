// Package main is the entry point for the wallet API server.
// It loads configuration, opens the stores, wires the services
// and serves HTTP until interrupted.
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/app"
	"github.com/llshivamsinghll/bank-wallet/internal/config"
	"github.com/llshivamsinghll/bank-wallet/internal/handlers"
	"github.com/llshivamsinghll/bank-wallet/internal/logger"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/cache"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/memory"

	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := logger.New(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	health := map[string]handlers.HealthCheck{}
	var stores app.Stores

	switch cfg.StorageDriver {
	case "memory":
		log.Warn("using in-memory storage; data is lost on exit")
		stores = app.Stores{
			Ledger: memory.NewLedger(),
			Banks:  memory.NewBanks(),
			Users:  memory.NewUsers(),
		}
	default:
		db, err := repositories.OpenPostgres(repositories.DefaultDBConfig(cfg.DatabaseDSN), log)
		if err != nil {
			log.WithError(err).Fatal("database unavailable")
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.WithError(err).Fatal("failed to get database instance")
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				log.WithError(err).Warn("failed to close database connection")
			}
		}()
		go logPoolStats(sqlDB, log)

		health["database"] = sqlDB.PingContext
		stores = app.Stores{
			Ledger: repositories.NewLedgerRepository(db),
			Banks:  repositories.NewBankRepository(db),
			Users:  repositories.NewUserRepository(db),
		}
	}

	var balances cache.BalanceCache = cache.NoopBalanceCache{}
	client, err := cache.NewRedisClient(context.Background(), cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.WithError(err).Warn("redis unavailable, balance reads go to the ledger")
	} else {
		svc := cache.NewCacheService(client, cfg.CacheTTL)
		defer func() {
			if err := svc.Close(); err != nil {
				log.WithError(err).Warn("failed to close redis connection")
			}
		}()
		balances = cache.NewBalanceCache(svc)
		health["redis"] = svc.Ping
	}

	a := app.New(cfg, stores, app.Options{
		Balances:  balances,
		Health:    health,
		AccessLog: true,
	}, log)

	go func() {
		if err := a.Fiber.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("settlement queue not fully drained")
	}
}

func logPoolStats(db *sql.DB, log logrus.FieldLogger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		stats := db.Stats()
		log.WithFields(logrus.Fields{
			"open":          stats.OpenConnections,
			"idle":          stats.Idle,
			"in_use":        stats.InUse,
			"wait_count":    stats.WaitCount,
			"wait_duration": stats.WaitDuration.String(),
		}).Debug("db pool stats")
	}
}
