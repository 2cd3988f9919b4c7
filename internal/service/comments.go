package service

import (
	"context"

	"github.com/MosinFAM/grams/internal/errs"
	"github.com/MosinFAM/grams/internal/models"
	"github.com/MosinFAM/grams/internal/storage"
	"github.com/MosinFAM/grams/internal/validation"

	"github.com/rs/zerolog"
)

const (
	DefaultCommentsLimit = 20
	MaxCommentsLimit     = 100
)

// CommentInput - данные формы комментария; пустое сообщение допустимо
type CommentInput struct {
	Message string `json:"message" validate:"max=2000"`
}

// Comments - операции над комментариями
type Comments struct {
	storage storage.Storage
	logger  zerolog.Logger
}

func NewComments(s storage.Storage, logger zerolog.Logger) *Comments {
	return &Comments{storage: s, logger: logger.With().Str("service", "comments").Logger()}
}

// Create добавляет комментарий к граму. Комментировать может любой вошедший пользователь.
func (s *Comments) Create(ctx context.Context, actor *models.User, gramID, message string) (*models.Comment, error) {
	if actor == nil {
		return nil, errs.NewNotAuthenticatedError()
	}
	if _, err := s.storage.GetGramByID(ctx, gramID); err != nil {
		return nil, notFound(err, gramNotFound)
	}
	if err := validation.Struct(CommentInput{Message: message}); err != nil {
		return nil, err
	}

	comment, err := s.storage.AddComment(ctx, gramID, actor.ID, message)
	if err != nil {
		return nil, notFound(err, gramNotFound)
	}

	s.logger.Info().Str("gram_id", gramID).Str("comment_id", comment.ID).Str("user_id", actor.ID).Msg("comment created")
	return comment, nil
}

// List возвращает страницу комментариев в порядке добавления
func (s *Comments) List(ctx context.Context, gramID string, limit, offset int) ([]*models.Comment, error) {
	if limit < 1 || limit > MaxCommentsLimit {
		return nil, errs.NewBadRequestError("limit must be between 1 and 100")
	}
	if offset < 0 {
		return nil, errs.NewBadRequestError("offset must not be negative")
	}

	comments, err := s.storage.GetCommentsByGramID(ctx, gramID, limit, offset)
	if err != nil {
		return nil, notFound(err, gramNotFound)
	}
	return comments, nil
}
