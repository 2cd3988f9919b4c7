package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/MosinFAM/grams/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// коды ошибок PostgreSQL
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// PostgresStorage - хранилище в PostgreSQL
type PostgresStorage struct {
	DB     *sql.DB
	logger zerolog.Logger
}

// NewPostgresStorage создаёт экземпляр PostgreSQL-хранилища
func NewPostgresStorage(db *sql.DB, logger zerolog.Logger) *PostgresStorage {
	return &PostgresStorage{DB: db, logger: logger.With().Str("storage", "postgres").Logger()}
}

// ID хранятся в колонках типа UUID, поэтому всё, что не парсится как UUID, заведомо отсутствует
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GetAllGrams возвращает все грамы в порядке создания
func (s *PostgresStorage) GetAllGrams(ctx context.Context) ([]models.Gram, error) {
	s.logger.Debug().Msg("fetching all grams")
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, owner_id, message, created_at, updated_at FROM grams ORDER BY seq")
	if err != nil {
		return nil, errors.Wrap(err, "select grams")
	}
	defer rows.Close()

	grams := []models.Gram{}
	for rows.Next() {
		var gram models.Gram
		if err := rows.Scan(&gram.ID, &gram.OwnerID, &gram.Message, &gram.CreatedAt, &gram.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scan gram")
		}
		grams = append(grams, gram)
	}
	return grams, errors.Wrap(rows.Err(), "iterate grams")
}

// GetGramByID возвращает грам по ID
func (s *PostgresStorage) GetGramByID(ctx context.Context, id string) (*models.Gram, error) {
	s.logger.Debug().Str("gram_id", id).Msg("fetching gram")
	if !validID(id) {
		return nil, ErrNotFound
	}

	var gram models.Gram
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, owner_id, message, created_at, updated_at FROM grams WHERE id=$1", id).
		Scan(&gram.ID, &gram.OwnerID, &gram.Message, &gram.CreatedAt, &gram.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select gram")
	}
	return &gram, nil
}

// AddGram добавляет новый грам в БД
func (s *PostgresStorage) AddGram(ctx context.Context, ownerID, message string) (models.Gram, error) {
	now := time.Now().UTC()
	gram := models.Gram{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO grams (id, owner_id, message, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		gram.ID, gram.OwnerID, gram.Message, gram.CreatedAt, gram.UpdatedAt)
	if err != nil {
		return models.Gram{}, errors.Wrap(err, "insert gram")
	}

	s.logger.Debug().Str("gram_id", gram.ID).Str("owner_id", ownerID).Msg("gram added")
	return gram, nil
}

// UpdateGramMessage меняет сообщение грама
func (s *PostgresStorage) UpdateGramMessage(ctx context.Context, id, message string) (*models.Gram, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var gram models.Gram
	err := s.DB.QueryRowContext(ctx,
		"UPDATE grams SET message=$2, updated_at=$3 WHERE id=$1 RETURNING id, owner_id, message, created_at, updated_at",
		id, message, time.Now().UTC()).
		Scan(&gram.ID, &gram.OwnerID, &gram.Message, &gram.CreatedAt, &gram.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update gram")
	}

	s.logger.Debug().Str("gram_id", id).Msg("gram updated")
	return &gram, nil
}

// DeleteGram удаляет грам; комментарии удаляются каскадно
func (s *PostgresStorage) DeleteGram(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}

	res, err := s.DB.ExecContext(ctx, "DELETE FROM grams WHERE id=$1", id)
	if err != nil {
		return errors.Wrap(err, "delete gram")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete gram")
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Debug().Str("gram_id", id).Msg("gram deleted")
	return nil
}

// AddComment добавляет комментарий к граму
func (s *PostgresStorage) AddComment(ctx context.Context, gramID, authorID, message string) (*models.Comment, error) {
	if !validID(gramID) {
		return nil, ErrNotFound
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM grams WHERE id=$1)", gramID).Scan(&exists)
	if err != nil {
		return nil, errors.Wrap(err, "check gram")
	}
	if !exists {
		return nil, ErrNotFound
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		GramID:    gramID,
		AuthorID:  authorID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO comments (id, gram_id, author_id, message, created_at) VALUES ($1, $2, $3, $4, $5)",
		comment.ID, comment.GramID, comment.AuthorID, comment.Message, comment.CreatedAt)

	// грам могли удалить между проверкой и вставкой
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "insert comment")
	}

	s.logger.Debug().Str("gram_id", gramID).Str("comment_id", comment.ID).Msg("comment added")
	return &comment, nil
}

// GetCommentsByGramID возвращает комментарии к граму в порядке добавления
func (s *PostgresStorage) GetCommentsByGramID(ctx context.Context, gramID string, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.GetGramByID(ctx, gramID); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, gram_id, author_id, message, created_at FROM comments WHERE gram_id=$1 ORDER BY seq LIMIT $2 OFFSET $3",
		gramID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "select comments")
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.GramID, &comment.AuthorID, &comment.Message, &comment.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan comment")
		}
		comments = append(comments, &comment)
	}
	return comments, errors.Wrap(rows.Err(), "iterate comments")
}

// AddUser регистрирует пользователя
func (s *PostgresStorage) AddUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	user := models.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)",
		user.ID, user.Email, user.PasswordHash, user.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.User{}, ErrDuplicate
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "insert user")
	}

	s.logger.Debug().Str("user_id", user.ID).Msg("user added")
	return user, nil
}

// GetUserByID возвращает пользователя по ID
func (s *PostgresStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return s.getUser(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE id=$1", id)
}

// GetUserByEmail возвращает пользователя по email
func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE email=$1", strings.ToLower(email))
}

func (s *PostgresStorage) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user")
	}
	return &user, nil
}
