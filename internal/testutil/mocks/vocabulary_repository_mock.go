package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/junyi/vocabflash/internal/models"
)

// MockVocabularyRepository is a mock implementation of repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Upsert(ctx context.Context, v models.Vocabulary) (int64, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVocabularyRepository) Get(ctx context.Context, id int64) (*models.Vocabulary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) GetByWord(ctx context.Context, word string) (*models.Vocabulary, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) List(ctx context.Context, filter models.VocabularyFilter) ([]models.Vocabulary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) Count(ctx context.Context, filter models.VocabularyFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) ByIDs(ctx context.Context, ids []int64) (map[int64]models.Vocabulary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) UnrecordedForUser(ctx context.Context, userID int64, limit int) ([]models.Vocabulary, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) RandomByDifficulty(ctx context.Context, minDifficulty, maxDifficulty, limit int) ([]models.Vocabulary, error) {
	args := m.Called(ctx, minDifficulty, maxDifficulty, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) RandomDefinitions(ctx context.Context, excludeID int64, limit int) ([]string, error) {
	args := m.Called(ctx, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
