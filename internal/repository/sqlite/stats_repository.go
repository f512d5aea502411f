package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// UserStats aggregates learning progress counters. Rating-derived fields
// (recommended difficulty, performance level) are filled in by the service.
func (r *statsRepository) UserStats(ctx context.Context, userID int64, now time.Time) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing user stats: user_id=%d", userID)

	var stats models.UserStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(CASE WHEN status != 'unknown' THEN 1 END),
    COUNT(CASE WHEN state = 'mastered' THEN 1 END),
    COUNT(CASE WHEN state = 'learning' THEN 1 END),
    COUNT(CASE WHEN next_review IS NOT NULL AND next_review <= ? THEN 1 END)
FROM word_records
WHERE user_id = ?
`, now, userID).Scan(&stats.TotalStudied, &stats.Mastered, &stats.Learning, &stats.DueForReview)
	if err != nil {
		log.Error("failed to compute record stats: %v", err)
		return nil, err
	}

	var studied, correct sql.NullInt64
	err = r.db.QueryRowContext(ctx, `
SELECT SUM(words_studied), SUM(correct_count)
FROM study_sessions
WHERE user_id = ?
`, userID).Scan(&studied, &correct)
	if err != nil {
		log.Error("failed to compute session stats: %v", err)
		return nil, err
	}
	if studied.Valid && studied.Int64 > 0 {
		stats.CorrectRate = float64(correct.Int64) / float64(studied.Int64)
	}

	return &stats, nil
}
