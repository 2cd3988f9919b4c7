package service

import (
	"context"

	"github.com/MosinFAM/grams/internal/auth"
	"github.com/MosinFAM/grams/internal/errs"
	"github.com/MosinFAM/grams/internal/models"
	"github.com/MosinFAM/grams/internal/storage"
	"github.com/MosinFAM/grams/internal/validation"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const invalidCredentials = "Invalid email or password."

// SignUpInput - данные регистрации
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// Accounts - регистрация и вход пользователей
type Accounts struct {
	storage storage.Storage
	logger  zerolog.Logger
}

func NewAccounts(s storage.Storage, logger zerolog.Logger) *Accounts {
	return &Accounts{storage: s, logger: logger.With().Str("service", "accounts").Logger()}
}

// SignUp создаёт пользователя; занятый email даёт 422
func (s *Accounts) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if err := validation.Struct(SignUpInput{Email: email, Password: password}); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.AddUser(ctx, email, hash)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, errs.NewUnprocessableError("Validation failed", []errs.FieldError{
			{Field: "email", Error: "has already been taken"},
		})
	}
	if err != nil {
		return nil, errors.Wrap(err, "storage")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed up")
	return &user, nil
}

// SignIn проверяет email и пароль. Неизвестный email и неверный пароль неразличимы.
func (s *Accounts) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errs.NewUnauthorizedError(invalidCredentials)
	}
	if err != nil {
		return nil, errors.Wrap(err, "storage")
	}

	ok, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn().Str("user_id", user.ID).Msg("wrong password")
		return nil, errs.NewUnauthorizedError(invalidCredentials)
	}
	return user, nil
}
