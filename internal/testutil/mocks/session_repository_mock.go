package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/junyi/vocabflash/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(ctx context.Context, userID int64, start time.Time) (int64, error) {
	args := m.Called(ctx, userID, start)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Get(ctx context.Context, id int64) (*models.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockSessionRepository) RecordAttempt(ctx context.Context, id int64, correct bool) error {
	args := m.Called(ctx, id, correct)
	return args.Error(0)
}

func (m *MockSessionRepository) End(ctx context.Context, id int64, end time.Time) (*models.StudySession, error) {
	args := m.Called(ctx, id, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}
