package user

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/logger"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/memory"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsers()
	u := &models.User{Email: "a@b.co", Phone: "1", Password: "x"}
	require.NoError(t, users.Create(ctx, u))
	svc := NewService(users, logger.Discard())

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Profile.FirstName)

	updated, err := svc.UpdateProfile(ctx, u.ID, ProfileInput{
		FirstName:   "Ada",
		LastName:    "Obi",
		Address:     "12 Marina, Lagos",
		DateOfBirth: "1990-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Profile.FirstName)
	require.NotNil(t, updated.Profile.DateOfBirth)
	assert.Equal(t, 1990, updated.Profile.DateOfBirth.Year())

	_, err = svc.UpdateProfile(ctx, u.ID, ProfileInput{FirstName: "Ada"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, u.ID, ProfileInput{FirstName: "A", LastName: "B", Address: "C", DateOfBirth: "01/04/1990"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

type brokenUsers struct {
	repositories.UserRepository
}

func (brokenUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func (brokenUsers) UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func TestUserService_StoreFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	log, hook := test.NewNullLogger()
	svc := NewService(brokenUsers{}, log)

	_, err := svc.GetProfile(ctx, "u-1")
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "get_profile", entry.Data["operation"])
	assert.Equal(t, "u-1", entry.Data["user_id"])
	assert.Equal(t, "connection refused", entry.Data["error"])

	_, err = svc.UpdateProfile(ctx, "u-1", ProfileInput{FirstName: "A", LastName: "B", Address: "C", DateOfBirth: "1990-04-01"})
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, "update_profile", hook.LastEntry().Data["operation"])
	assert.Len(t, hook.AllEntries(), 2)
}

func TestUserService_NotFoundIsNotLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	svc := NewService(memory.NewUsers(), log)

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Empty(t, hook.AllEntries())
}
