// Command admin_seed creates the admin account and the default bank list.
// It is safe to run more than once.
package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/llshivamsinghll/bank-wallet/internal/config"
	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/logger"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var defaultBanks = []models.Bank{
	{Name: "Access Bank", Code: "ACC", MaxLimit: decimal.NewFromInt(500000)},
	{Name: "Guaranty Trust Bank", Code: "GTB", MaxLimit: decimal.NewFromInt(1000000)},
	{Name: "Zenith Bank", Code: "ZEN", MaxLimit: decimal.NewFromInt(1000000)},
	{Name: "First Bank", Code: "FBN", MaxLimit: decimal.NewFromInt(250000)},
}

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := logger.New(cfg.Env)
	ctx := context.Background()

	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")

	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	db, err := repositories.OpenPostgres(repositories.DefaultDBConfig(cfg.DatabaseDSN), log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	users := repositories.NewUserRepository(db)
	banks := repositories.NewBankRepository(db)

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		log.Info("admin user already exists")
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		log.WithError(err).Fatal("failed to look up admin user")
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Fatal("failed to hash password")
		}
		admin := &models.User{
			Email:    adminEmail,
			Password: string(hashed),
			Phone:    adminPhone,
			Role:     models.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.WithError(err).Fatal("failed to create admin user")
		}
		log.WithField("user_id", admin.ID).Info("admin account created")
	}

	for _, b := range defaultBanks {
		bank := b
		err := banks.CreateBank(ctx, &bank)
		switch {
		case err == nil:
			log.WithField("code", bank.Code).Info("bank created")
		case errors.Is(err, apperrors.ErrBankExists):
			log.WithField("code", bank.Code).Debug("bank already exists")
		default:
			log.WithError(err).WithField("code", bank.Code).Fatal("failed to create bank")
		}
	}
}
