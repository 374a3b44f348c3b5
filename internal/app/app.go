// Package app assembles the service graph and the HTTP server from
// explicit dependencies. cmd/server supplies the stores; tests supply
// in-memory ones.
package app

import (
	"context"
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/config"
	"github.com/llshivamsinghll/bank-wallet/internal/handlers"
	"github.com/llshivamsinghll/bank-wallet/internal/metrics"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/cache"
	"github.com/llshivamsinghll/bank-wallet/internal/routes"
	"github.com/llshivamsinghll/bank-wallet/internal/services/auth"
	"github.com/llshivamsinghll/bank-wallet/internal/services/bank"
	"github.com/llshivamsinghll/bank-wallet/internal/services/limits"
	"github.com/llshivamsinghll/bank-wallet/internal/services/query"
	"github.com/llshivamsinghll/bank-wallet/internal/services/settlement"
	"github.com/llshivamsinghll/bank-wallet/internal/services/user"
	"github.com/llshivamsinghll/bank-wallet/internal/services/wallet"
	"github.com/llshivamsinghll/bank-wallet/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Stores are the persistence backends.
type Stores struct {
	Ledger repositories.LedgerRepository
	Banks  repositories.BankRepository
	Users  repositories.UserRepository
}

type Options struct {
	// Balances defaults to a no-op cache.
	Balances cache.BalanceCache
	// Settler defaults to a SimulatedBank with cfg.SettlementDelay.
	Settler settlement.Settler
	Health  map[string]handlers.HealthCheck
	// AccessLog enables the per-request log line.
	AccessLog bool
}

type App struct {
	Fiber   *fiber.App
	Metrics *metrics.Collector

	Wallet wallet.Service
	Auth   auth.Service
	Banks  bank.Service

	pool *worker.Pool
	log  logrus.FieldLogger
}

func New(cfg config.Config, stores Stores, opts Options, log *logrus.Logger) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	workers := cfg.SettlementWorkers
	if workers < 1 {
		workers = 1
	}
	queue := cfg.SettlementQueue
	if queue < 1 {
		queue = 64
	}
	pool := worker.NewPool(workers, queue, worker.WithDepthObserver(collector.SetQueueDepth))

	settler := opts.Settler
	if settler == nil {
		settler = settlement.SimulatedBank{Delay: cfg.SettlementDelay}
	}
	dispatcher := settlement.NewDispatcher(pool, settler, log.WithField("component", "settlement"))
	dispatcher.OnDone(func(task settlement.Task, err error) {
		collector.RecordSettlement(task.Direction, err)
	})

	balances := opts.Balances
	if balances == nil {
		balances = cache.NoopBalanceCache{}
	}

	policy := limits.NewPolicy(cfg.Limits, stores.Ledger)
	walletSvc := wallet.NewService(
		stores.Ledger,
		stores.Banks,
		policy,
		balances,
		dispatcher,
		wallet.WalletConfig{DefaultCurrency: cfg.DefaultCurrency},
		collector,
		log.WithField("component", "wallet"),
	)
	querySvc := query.NewService(stores.Ledger, balances, collector, log.WithField("component", "query"))
	bankSvc := bank.NewService(stores.Banks, stores.Ledger, log.WithField("component", "bank"))
	authSvc := auth.NewService(stores.Users, walletSvc, auth.Config{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, log.WithField("component", "auth"))
	userSvc := user.NewService(stores.Users, log.WithField("component", "user"))

	server := fiber.New(fiber.Config{
		AppName:      "bank-wallet",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	if opts.AccessLog {
		server.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	server.Use(collector.Middleware())

	routes.SetupRoutes(server, routes.Dependencies{
		Auth:          authSvc,
		Wallet:        walletSvc,
		Query:         querySvc,
		Banks:         bankSvc,
		Users:         userSvc,
		Health:        opts.Health,
		Metrics:       collector.Handler(),
		Log:           log.WithField("component", "http"),
		Location:      time.Local,
		AuthRateLimit: cfg.AuthRateLimit,
	})

	return &App{
		Fiber:   server,
		Metrics: collector,
		Wallet:  walletSvc,
		Auth:    authSvc,
		Banks:   bankSvc,
		pool:    pool,
		log:     log,
	}
}

// Shutdown stops accepting requests, then drains queued settlements until
// ctx expires.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		a.log.WithError(err).Warn("http shutdown")
	}
	return a.pool.Stop(ctx)
}
