package storage

import (
	"context"

	"github.com/MosinFAM/grams/internal/models"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound - запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate - нарушено условие уникальности (email пользователя)
	ErrDuplicate = errors.New("record already exists")
)

// Storage - интерфейс для всех типов хранилищ (in-memory и PostgreSQL)
type Storage interface {
	GetAllGrams(ctx context.Context) ([]models.Gram, error)
	GetGramByID(ctx context.Context, id string) (*models.Gram, error)
	AddGram(ctx context.Context, ownerID, message string) (models.Gram, error)
	UpdateGramMessage(ctx context.Context, id, message string) (*models.Gram, error)
	DeleteGram(ctx context.Context, id string) error

	AddComment(ctx context.Context, gramID, authorID, message string) (*models.Comment, error)
	GetCommentsByGramID(ctx context.Context, gramID string, limit, offset int) ([]*models.Comment, error)

	AddUser(ctx context.Context, email, passwordHash string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
