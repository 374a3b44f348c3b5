package memory

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"

	"github.com/google/uuid"
)

type Users struct {
	mu    sync.RWMutex
	users map[string]models.User // by id
}

var _ repositories.UserRepository = (*Users)(nil)

func NewUsers() *Users {
	return &Users{users: make(map[string]models.User)}
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, existing := range u.users {
		if existing.Email == user.Email {
			return apperrors.ErrUserExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.TokenVersion == 0 {
		user.TokenVersion = 1
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	u.users[user.ID] = *user
	return nil
}

func (u *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, ok := u.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (u *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, user := range u.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (u *Users) UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user.Profile = profile
	user.UpdatedAt = time.Now()
	u.users[userID] = user
	return &user, nil
}
