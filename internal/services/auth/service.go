// Package auth issues and verifies access tokens. It is the only place a
// request's identity is established; everything downstream receives a
// plain user ID.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"
	"github.com/llshivamsinghll/bank-wallet/internal/validation"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// Register creates the user and then opens their wallet.
	Register(ctx context.Context, req RegisterRequest) (*models.User, *models.Wallet, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// VerifyToken checks the signature, expiry and token version.
	VerifyToken(ctx context.Context, token string) (*models.UserClaims, error)
}

type RegisterRequest struct {
	Email    string
	Phone    string
	Password string
}

// WalletCreator opens the wallet for a newly registered user.
type WalletCreator interface {
	CreateWallet(ctx context.Context, userID, currency string) (*models.Wallet, error)
}

type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

var ErrUnauthorized = errors.New("unauthorized")

type service struct {
	users   repositories.UserRepository
	wallets WalletCreator
	cfg     Config
	log     logrus.FieldLogger
}

func NewService(users repositories.UserRepository, wallets WalletCreator, cfg Config, log logrus.FieldLogger) Service {
	if cfg.JWTSecret == "" {
		panic("jwt secret is required")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{users: users, wallets: wallets, cfg: cfg, log: log}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*models.User, *models.Wallet, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	if email == "" || phone == "" || req.Password == "" {
		return nil, nil, apperrors.ErrInvalidInput.WithMessage("please provide all fields")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, nil, s.internal("register", err)
	}

	user := &models.User{
		Email:    email,
		Phone:    phone,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var de *apperrors.DomainError
		if errors.As(err, &de) {
			return nil, nil, de
		}
		return nil, nil, s.internal("register", err)
	}

	wallet, err := s.wallets.CreateWallet(ctx, user.ID, "")
	if err != nil {
		// The account exists; the wallet can still be opened explicitly.
		s.log.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Error("wallet creation after signup failed")
		return user, nil, nil
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID}).Info("user registered")
	return user, wallet, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperrors.ErrInvalidInput.WithMessage("please provide all fields")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", s.internal("login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": user.ID}).Warn("login failed: incorrect password")
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	}, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", s.internal("login", err)
	}
	return user, token, nil
}

func (s *service) VerifyToken(ctx context.Context, token string) (*models.UserClaims, error) {
	claims, err := utils.ParseToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"operation": "verify_token",
				"user_id":   claims.UserID,
				"error":     err.Error(),
			}).Error("token user lookup failed")
		}
		return nil, ErrUnauthorized
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrUnauthorized
	}
	// Role comes from the store so a demotion takes effect immediately.
	claims.Role = user.Role
	return claims, nil
}

func (s *service) internal(op string, err error) error {
	s.log.WithFields(logrus.Fields{"operation": op, "error": err.Error()}).Error("auth operation failed")
	return apperrors.ErrInternal
}
