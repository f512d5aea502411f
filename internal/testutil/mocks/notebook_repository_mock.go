package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/junyi/vocabflash/internal/models"
)

// MockNotebookRepository is a mock implementation of repository.NotebookRepository
type MockNotebookRepository struct {
	mock.Mock
}

func (m *MockNotebookRepository) Add(ctx context.Context, userID, wordRecordID int64, note string) error {
	args := m.Called(ctx, userID, wordRecordID, note)
	return args.Error(0)
}

func (m *MockNotebookRepository) ListByUser(ctx context.Context, userID int64) ([]models.NotebookEntryDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotebookEntryDetail), args.Error(1)
}

func (m *MockNotebookRepository) Remove(ctx context.Context, userID, entryID int64) (bool, error) {
	args := m.Called(ctx, userID, entryID)
	return args.Bool(0), args.Error(1)
}
