package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/junyi/vocabflash/internal/models"
)

// MockRecordRepository is a mock implementation of repository.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) GetOrCreate(ctx context.Context, userID, vocabularyID int64) (*models.WordRecord, error) {
	args := m.Called(ctx, userID, vocabularyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordRecord), args.Error(1)
}

func (m *MockRecordRepository) Update(ctx context.Context, rec models.WordRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordRepository) ListByUser(ctx context.Context, userID int64) ([]models.WordRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordRecord), args.Error(1)
}
