package user

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"

	"github.com/sirupsen/logrus"
)

type Service interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*models.User, error)
}

type ProfileInput struct {
	FirstName   string
	LastName    string
	Address     string
	DateOfBirth string // YYYY-MM-DD
}

type service struct {
	repo repositories.UserRepository
	log  logrus.FieldLogger
}

func NewService(repo repositories.UserRepository, log logrus.FieldLogger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{repo: repo, log: log}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	return s.lookup("get_profile", userID, u, err)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*models.User, error) {
	profile := models.Profile{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Address:   strings.TrimSpace(input.Address),
	}
	if profile.FirstName == "" || profile.LastName == "" || profile.Address == "" || input.DateOfBirth == "" {
		return nil, apperrors.ErrInvalidInput.WithMessage("please provide all fields")
	}

	dob, err := time.Parse("2006-01-02", strings.TrimSpace(input.DateOfBirth))
	if err != nil {
		return nil, apperrors.ErrInvalidInput.WithMessage("dateOfBirth must be YYYY-MM-DD")
	}
	if dob.After(time.Now()) {
		return nil, apperrors.ErrInvalidInput.WithMessage("dateOfBirth is in the future")
	}
	profile.DateOfBirth = &dob

	u, err := s.repo.UpdateProfile(ctx, userID, profile)
	return s.lookup("update_profile", userID, u, err)
}

func (s *service) lookup(op, userID string, u *models.User, err error) (*models.User, error) {
	if err != nil {
		var de *apperrors.DomainError
		if errors.As(err, &de) {
			return nil, de
		}
		s.log.WithFields(logrus.Fields{
			"operation": op,
			"user_id":   userID,
			"error":     err.Error(),
		}).Error("user operation failed")
		return nil, apperrors.ErrInternal
	}
	return u, nil
}
