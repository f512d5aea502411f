package sqlite

import (
	"context"
	"database/sql"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
)

const recordColumns = "id, user_id, vocabulary_id, status, easiness, interval, repetitions, next_review, last_review, state, created_at"

type recordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new RecordRepository implementation
func NewRecordRepository(db *sql.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) GetOrCreate(ctx context.Context, userID, vocabularyID int64) (*models.WordRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("record_repo")
	log.Debug("get-or-create record: user_id=%d, vocabulary_id=%d", userID, vocabularyID)

	fresh := models.NewWordRecord(userID, vocabularyID)

	// INSERT OR IGNORE + SELECT keeps this a single race-free round trip pair
	// under SQLite's single-writer model.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO word_records (user_id, vocabulary_id, status, easiness, interval, repetitions, state)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, vocabulary_id) DO NOTHING
`, userID, vocabularyID, fresh.Status, fresh.Easiness, fresh.Interval, fresh.Repetitions, fresh.State)
	if err != nil {
		log.Error("failed to ensure record exists: %v", err)
		return nil, err
	}

	var rec models.WordRecord
	var status, state string
	err = r.db.QueryRowContext(ctx, `
SELECT `+recordColumns+`
FROM word_records
WHERE user_id = ? AND vocabulary_id = ?
`, userID, vocabularyID).Scan(&rec.ID, &rec.UserID, &rec.VocabularyID, &status, &rec.Easiness,
		&rec.Interval, &rec.Repetitions, &rec.NextReview, &rec.LastReview, &state, &rec.CreatedAt)
	if err != nil {
		log.Error("failed to load record: %v", err)
		return nil, err
	}
	rec.Status = models.MemoryStatus(status)
	rec.State = models.WordState(state)
	return &rec, nil
}

func (r *recordRepository) Update(ctx context.Context, rec models.WordRecord) error {
	log := logger.FromContext(ctx).WithPrefix("record_repo")
	log.Debug("updating record: id=%d, interval=%d, easiness=%.2f, state=%s", rec.ID, rec.Interval, rec.Easiness, rec.State)

	_, err := r.db.ExecContext(ctx, `
UPDATE word_records
SET status = ?, easiness = ?, interval = ?, repetitions = ?, next_review = ?, last_review = ?, state = ?
WHERE id = ?
`, rec.Status, rec.Easiness, rec.Interval, rec.Repetitions, rec.NextReview, rec.LastReview, rec.State, rec.ID)
	if err != nil {
		log.Error("failed to update record: %v", err)
	}
	return err
}

func (r *recordRepository) ListByUser(ctx context.Context, userID int64) ([]models.WordRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("record_repo")
	log.Debug("listing records: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+recordColumns+`
FROM word_records
WHERE user_id = ?
ORDER BY id ASC
`, userID)
	if err != nil {
		log.Error("failed to list records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.WordRecord
	for rows.Next() {
		var rec models.WordRecord
		var status, state string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.VocabularyID, &status, &rec.Easiness,
			&rec.Interval, &rec.Repetitions, &rec.NextReview, &rec.LastReview, &state, &rec.CreatedAt); err != nil {
			log.Error("failed to scan record row: %v", err)
			return nil, err
		}
		rec.Status = models.MemoryStatus(status)
		rec.State = models.WordState(state)
		records = append(records, rec)
	}
	log.Debug("found %d records", len(records))
	return records, rows.Err()
}
