// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"net/http"
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/handlers"
	"github.com/llshivamsinghll/bank-wallet/internal/middleware"
	"github.com/llshivamsinghll/bank-wallet/internal/services/auth"
	"github.com/llshivamsinghll/bank-wallet/internal/services/bank"
	"github.com/llshivamsinghll/bank-wallet/internal/services/query"
	"github.com/llshivamsinghll/bank-wallet/internal/services/user"
	"github.com/llshivamsinghll/bank-wallet/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sirupsen/logrus"
)

// Dependencies are the services the HTTP layer is built from.
type Dependencies struct {
	Auth    auth.Service
	Wallet  wallet.Service
	Query   query.Service
	Banks   bank.Service
	Users   user.Service
	Health  map[string]handlers.HealthCheck
	Metrics http.Handler
	Log     logrus.FieldLogger

	// Location for calendar-date transaction filters.
	Location *time.Location
	// AuthRateLimit caps auth requests per IP per minute; zero disables it.
	AuthRateLimit int
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Auth)
	walletHandler := handlers.NewWalletHandler(deps.Wallet, deps.Query)
	txHandler := handlers.NewTransactionHandler(deps.Query, deps.Location)
	bankHandler := handlers.NewBankHandler(deps.Banks)
	userHandler := handlers.NewUserHandler(deps.Users)
	healthHandler := handlers.NewHealthHandler("1.0.0", deps.Health)

	app.Get("/health", healthHandler.Health)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Public endpoints (no auth required)
	authRoutes := api.Group("/auth")
	if deps.AuthRateLimit > 0 {
		authRoutes.Use(authLimiter(deps.AuthRateLimit))
	}
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	authMiddleware := middleware.NewAuthMiddleware(deps.Auth, deps.Log)

	walletRoutes := api.Group("/wallet", authMiddleware.Handler)
	walletRoutes.Post("/", walletHandler.CreateWallet)
	walletRoutes.Get("/balance", walletHandler.GetBalance)
	walletRoutes.Get("/transactions", txHandler.ListTransactions)
	walletRoutes.Post("/transaction", walletHandler.RecordTransaction)
	walletRoutes.Post("/transfer/:bank", walletHandler.Transfer)
	walletRoutes.Post("/topup/:bank", walletHandler.TopUp)

	bankRoutes := api.Group("/banks", authMiddleware.Handler)
	bankRoutes.Get("/", bankHandler.ListBanks)
	bankRoutes.Post("/", middleware.AdminAuthMiddleware, bankHandler.CreateBank)
	bankRoutes.Post("/:bank/link", bankHandler.LinkAccount)

	profileRoutes := api.Group("/profile", authMiddleware.Handler)
	profileRoutes.Get("/", userHandler.GetProfile)
	profileRoutes.Put("/", userHandler.UpdateProfile)
}

func authLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
