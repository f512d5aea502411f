package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, userID int64, start time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("starting session: user_id=%d", userID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (user_id, start_time)
VALUES (?, ?)
`, userID, start)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("session started: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var s models.StudySession
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, start_time, end_time, words_studied, correct_count, correct_rate
FROM study_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.UserID, &s.StartTime, &s.EndTime, &s.WordsStudied, &s.CorrectCount, &s.CorrectRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) RecordAttempt(ctx context.Context, id int64, correct bool) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("recording attempt: session_id=%d, correct=%v", id, correct)

	increment := 0
	if correct {
		increment = 1
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE study_sessions
SET words_studied = words_studied + 1,
    correct_count = correct_count + ?,
    correct_rate = CAST(correct_count + ? AS REAL) / (words_studied + 1)
WHERE id = ? AND end_time IS NULL
`, increment, increment, id)
	if err != nil {
		log.Error("failed to record attempt: %v", err)
	}
	return err
}

func (r *sessionRepository) End(ctx context.Context, id int64, end time.Time) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("ending session: id=%d", id)

	res, err := r.db.ExecContext(ctx, `
UPDATE study_sessions
SET end_time = ?
WHERE id = ? AND end_time IS NULL
`, end, id)
	if err != nil {
		log.Error("failed to end session: %v", err)
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("session %d already ended or missing", id)
	}
	return r.Get(ctx, id)
}
