package sqlite

import (
	"context"
	"database/sql"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
)

type notebookRepository struct {
	db *sql.DB
}

// NewNotebookRepository creates a new NotebookRepository implementation
func NewNotebookRepository(db *sql.DB) repository.NotebookRepository {
	return &notebookRepository{db: db}
}

func (r *notebookRepository) Add(ctx context.Context, userID, wordRecordID int64, note string) error {
	log := logger.FromContext(ctx).WithPrefix("notebook_repo")
	log.Debug("adding mistake entry: user_id=%d, word_record_id=%d", userID, wordRecordID)

	// A word already in the book stays there; only the note refreshes.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO mistake_book (user_id, word_record_id, note)
VALUES (?, ?, ?)
ON CONFLICT(word_record_id) DO UPDATE SET note = excluded.note
`, userID, wordRecordID, note)
	if err != nil {
		log.Error("failed to add mistake entry: %v", err)
	}
	return err
}

func (r *notebookRepository) ListByUser(ctx context.Context, userID int64) ([]models.NotebookEntryDetail, error) {
	log := logger.FromContext(ctx).WithPrefix("notebook_repo")
	log.Debug("listing mistake book: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT m.id, m.user_id, m.word_record_id, m.note, m.created_at,
       v.word, v.definition, v.difficulty
FROM mistake_book m
JOIN word_records r ON r.id = m.word_record_id
JOIN vocabularies v ON v.id = r.vocabulary_id
WHERE m.user_id = ?
ORDER BY m.created_at DESC, m.id DESC
`, userID)
	if err != nil {
		log.Error("failed to list mistake book: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.NotebookEntryDetail
	for rows.Next() {
		var e models.NotebookEntryDetail
		if err := rows.Scan(&e.ID, &e.UserID, &e.WordRecordID, &e.Note, &e.CreatedAt,
			&e.Word, &e.Definition, &e.Difficulty); err != nil {
			log.Error("failed to scan mistake entry: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d mistake entries", len(entries))
	return entries, rows.Err()
}

func (r *notebookRepository) Remove(ctx context.Context, userID, entryID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("notebook_repo")
	log.Debug("removing mistake entry: user_id=%d, entry_id=%d", userID, entryID)

	res, err := r.db.ExecContext(ctx, `
DELETE FROM mistake_book
WHERE id = ? AND user_id = ?
`, entryID, userID)
	if err != nil {
		log.Error("failed to remove mistake entry: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
