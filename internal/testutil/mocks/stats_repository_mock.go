package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/junyi/vocabflash/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) UserStats(ctx context.Context, userID int64, now time.Time) (*models.UserStats, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}
