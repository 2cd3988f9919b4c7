package service

import (
	"context"

	"github.com/MosinFAM/grams/internal/errs"
	"github.com/MosinFAM/grams/internal/models"
	"github.com/MosinFAM/grams/internal/storage"
	"github.com/MosinFAM/grams/internal/validation"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const gramNotFound = "Gram not found"

// GramInput - данные формы грама
type GramInput struct {
	Message string `json:"message" validate:"notblank,max=2000"`
}

// Grams - операции над грамами. Текущий пользователь передаётся явно;
// nil означает анонимный запрос.
type Grams struct {
	storage storage.Storage
	logger  zerolog.Logger
}

func NewGrams(s storage.Storage, logger zerolog.Logger) *Grams {
	return &Grams{storage: s, logger: logger.With().Str("service", "grams").Logger()}
}

// List возвращает все грамы
func (s *Grams) List(ctx context.Context) ([]models.Gram, error) {
	grams, err := s.storage.GetAllGrams(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "storage")
	}
	return grams, nil
}

// Get возвращает грам по ID или 404
func (s *Grams) Get(ctx context.Context, id string) (*models.Gram, error) {
	gram, err := s.storage.GetGramByID(ctx, id)
	if err != nil {
		return nil, notFound(err, gramNotFound)
	}
	return gram, nil
}

// Create сохраняет грам от имени actor
func (s *Grams) Create(ctx context.Context, actor *models.User, message string) (models.Gram, error) {
	if actor == nil {
		return models.Gram{}, errs.NewNotAuthenticatedError()
	}
	if err := validation.Struct(GramInput{Message: message}); err != nil {
		return models.Gram{}, err
	}

	gram, err := s.storage.AddGram(ctx, actor.ID, message)
	if err != nil {
		return models.Gram{}, errors.Wrap(err, "storage")
	}

	s.logger.Info().Str("gram_id", gram.ID).Str("user_id", actor.ID).Msg("gram created")
	return gram, nil
}

// Editable возвращает грам, который actor вправе менять.
// Порядок проверок: аутентификация, существование, владение.
func (s *Grams) Editable(ctx context.Context, actor *models.User, id string) (*models.Gram, error) {
	if actor == nil {
		return nil, errs.NewNotAuthenticatedError()
	}
	gram, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor, gram) {
		s.logger.Warn().Str("gram_id", id).Str("user_id", actor.ID).Msg("gram ownership check failed")
		return nil, errs.NewForbiddenError("You are not allowed to change this gram")
	}
	return gram, nil
}

// Update меняет сообщение; при ошибке валидации грам не меняется
func (s *Grams) Update(ctx context.Context, actor *models.User, id, message string) (*models.Gram, error) {
	gram, err := s.Editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(GramInput{Message: message}); err != nil {
		return nil, err
	}

	updated, err := s.storage.UpdateGramMessage(ctx, gram.ID, message)
	if err != nil {
		return nil, notFound(err, gramNotFound)
	}

	s.logger.Info().Str("gram_id", id).Str("user_id", actor.ID).Msg("gram updated")
	return updated, nil
}

// Destroy удаляет грам вместе с комментариями
func (s *Grams) Destroy(ctx context.Context, actor *models.User, id string) error {
	gram, err := s.Editable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteGram(ctx, gram.ID); err != nil {
		return notFound(err, gramNotFound)
	}

	s.logger.Info().Str("gram_id", id).Str("user_id", actor.ID).Msg("gram destroyed")
	return nil
}
