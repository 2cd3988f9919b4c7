package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MosinFAM/grams/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// MemoryStorage - хранилище в памяти
type MemoryStorage struct {
	grams    map[string]models.Gram
	order    []string // ID грамов в порядке создания
	comments map[string][]models.Comment
	users    map[string]models.User
	emails   map[string]string // email -> ID пользователя
	logger   zerolog.Logger
	mu       sync.RWMutex
}

// NewMemoryStorage создает новое in-memory хранилище
func NewMemoryStorage(logger zerolog.Logger) *MemoryStorage {
	return &MemoryStorage{
		grams:    make(map[string]models.Gram),
		comments: make(map[string][]models.Comment),
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		logger:   logger.With().Str("storage", "memory").Logger(),
	}
}

// GetAllGrams возвращает все грамы в порядке создания
func (s *MemoryStorage) GetAllGrams(_ context.Context) ([]models.Gram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.Debug().Int("count", len(s.order)).Msg("fetching all grams")
	return lo.Map(s.order, func(id string, _ int) models.Gram {
		return s.grams[id]
	}), nil
}

// GetGramByID возвращает грам по ID
func (s *MemoryStorage) GetGramByID(_ context.Context, id string) (*models.Gram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.Debug().Str("gram_id", id).Msg("fetching gram")
	gram, exists := s.grams[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &gram, nil
}

// AddGram добавляет новый грам
func (s *MemoryStorage) AddGram(_ context.Context, ownerID, message string) (models.Gram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	gram := models.Gram{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.grams[gram.ID] = gram
	s.order = append(s.order, gram.ID)

	s.logger.Debug().Str("gram_id", gram.ID).Str("owner_id", ownerID).Msg("gram added")
	return gram, nil
}

// UpdateGramMessage меняет сообщение грама
func (s *MemoryStorage) UpdateGramMessage(_ context.Context, id, message string) (*models.Gram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gram, exists := s.grams[id]
	if !exists {
		return nil, ErrNotFound
	}
	gram.Message = message
	gram.UpdatedAt = time.Now().UTC()
	s.grams[id] = gram

	s.logger.Debug().Str("gram_id", id).Msg("gram updated")
	return &gram, nil
}

// DeleteGram удаляет грам вместе с его комментариями
func (s *MemoryStorage) DeleteGram(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.grams[id]; !exists {
		return ErrNotFound
	}
	delete(s.grams, id)
	delete(s.comments, id)
	s.order = lo.Without(s.order, id)

	s.logger.Debug().Str("gram_id", id).Msg("gram deleted")
	return nil
}

// AddComment добавляет комментарий в память
func (s *MemoryStorage) AddComment(_ context.Context, gramID, authorID, message string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.grams[gramID]; !exists {
		return nil, ErrNotFound
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		GramID:    gramID,
		AuthorID:  authorID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	s.comments[gramID] = append(s.comments[gramID], comment)

	s.logger.Debug().Str("gram_id", gramID).Str("comment_id", comment.ID).Msg("comment added")
	return &comment, nil
}

// GetCommentsByGramID возвращает комментарии к граму в порядке добавления
func (s *MemoryStorage) GetCommentsByGramID(_ context.Context, gramID string, limit, offset int) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.grams[gramID]; !exists {
		return nil, ErrNotFound
	}
	comments := s.comments[gramID]

	// Пагинация
	start := offset
	end := offset + limit
	if start > len(comments) {
		return []*models.Comment{}, nil
	}
	if end > len(comments) {
		end = len(comments)
	}

	result := make([]*models.Comment, 0, end-start)
	for i := start; i < end; i++ {
		comment := comments[i]
		result = append(result, &comment)
	}
	return result, nil
}

// AddUser регистрирует пользователя; email уникален без учёта регистра
func (s *MemoryStorage) AddUser(_ context.Context, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, taken := s.emails[key]; taken {
		return models.User{}, ErrDuplicate
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        key,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.emails[key] = user.ID

	s.logger.Debug().Str("user_id", user.ID).Msg("user added")
	return user, nil
}

// GetUserByID возвращает пользователя по ID
func (s *MemoryStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetUserByEmail возвращает пользователя по email
func (s *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.emails[strings.ToLower(email)]
	if !exists {
		return nil, ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}
