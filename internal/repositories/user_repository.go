package repositories

import (
	"context"

	"github.com/llshivamsinghll/bank-wallet/internal/models"
)

// UserRepository stores the identity records behind login and signup.
type UserRepository interface {
	// Create fails with ErrUserExists when the email is taken.
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateProfile overwrites the editable profile fields.
	UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error)
}
