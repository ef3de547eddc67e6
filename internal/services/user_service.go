package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/auth"
	"github.com/baharkarakas/stocksim/internal/models"
	repo "github.com/baharkarakas/stocksim/internal/repository"
	"github.com/baharkarakas/stocksim/internal/validate"
)

type UserService struct {
	r     repo.Users
	cash  decimal.Decimal
	audit *Auditor
}

func NewUserService(r repo.Users, startingCash decimal.Decimal, a *Auditor) *UserService {
	return &UserService{r: r, cash: startingCash, audit: a}
}

// Register validates the form in order and creates the account.
func (s *UserService) Register(ctx context.Context, username, password, confirmation string) (models.User, error) {
	switch {
	case validate.Required("username", username) != nil:
		return models.User{}, ErrMissingUsername
	case validate.Required("password", password) != nil:
		return models.User{}, ErrMissingPassword
	case password != confirmation:
		return models.User{}, ErrPasswordMismatch
	case !auth.StrongPassword(password):
		return models.User{}, ErrWeakPassword
	case auth.TooLong(password):
		return models.User{}, ErrPasswordTooLong
	}

	if _, err := s.r.GetByUsername(ctx, username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.r.Create(ctx, username, hash, s.cash)
	if errors.Is(err, repo.ErrConflict) {
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	s.audit.Record("user", u.ID, "registered", map[string]any{"username": u.Username})
	return u, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	if validate.Required("username", username) != nil {
		return models.User{}, ErrMissingUsername
	}
	if validate.Required("password", password) != nil {
		return models.User{}, ErrMissingPassword
	}
	u, err := s.r.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	s.audit.Record("user", u.ID, "login", nil)
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.r.GetByID(ctx, id)
}
