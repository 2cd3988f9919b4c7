package storage

import (
	"context"

	"github.com/MosinFAM/grams/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetAllGrams(ctx context.Context) ([]models.Gram, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Gram), args.Error(1)
}

func (m *MockStorage) GetGramByID(ctx context.Context, id string) (*models.Gram, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Gram), args.Error(1)
}

func (m *MockStorage) AddGram(ctx context.Context, ownerID, message string) (models.Gram, error) {
	args := m.Called(ctx, ownerID, message)
	return args.Get(0).(models.Gram), args.Error(1)
}

func (m *MockStorage) UpdateGramMessage(ctx context.Context, id, message string) (*models.Gram, error) {
	args := m.Called(ctx, id, message)
	return args.Get(0).(*models.Gram), args.Error(1)
}

func (m *MockStorage) DeleteGram(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) AddComment(ctx context.Context, gramID, authorID, message string) (*models.Comment, error) {
	args := m.Called(ctx, gramID, authorID, message)
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockStorage) GetCommentsByGramID(ctx context.Context, gramID string, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, gramID, limit, offset)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockStorage) AddUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(*models.User), args.Error(1)
}
