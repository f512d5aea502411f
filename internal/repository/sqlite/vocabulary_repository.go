package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const vocabularyColumns = "id, word, phonetic, definition, example, difficulty, frequency, category"

type vocabularyRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new VocabularyRepository implementation
func NewVocabularyRepository(db *sql.DB) repository.VocabularyRepository {
	return &vocabularyRepository{db: db}
}

func (r *vocabularyRepository) Upsert(ctx context.Context, v models.Vocabulary) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("upserting vocabulary: word=%s, difficulty=%d", v.Word, v.Difficulty)

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO vocabularies (word, phonetic, definition, example, difficulty, frequency, category)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(word) DO UPDATE SET
    phonetic = excluded.phonetic,
    definition = excluded.definition,
    example = excluded.example,
    difficulty = excluded.difficulty,
    frequency = excluded.frequency,
    category = excluded.category
RETURNING id
`, v.Word, v.Phonetic, v.Definition, v.Example, v.Difficulty, v.Frequency, v.Category).Scan(&id)
	if err != nil {
		log.Error("failed to upsert vocabulary: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *vocabularyRepository) Get(ctx context.Context, id int64) (*models.Vocabulary, error) {
	return r.getWhere(ctx, "id = ?", id)
}

func (r *vocabularyRepository) GetByWord(ctx context.Context, word string) (*models.Vocabulary, error) {
	return r.getWhere(ctx, "word = ? COLLATE NOCASE", word)
}

func (r *vocabularyRepository) getWhere(ctx context.Context, clause string, arg any) (*models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	var v models.Vocabulary
	err := r.db.QueryRowContext(ctx, `
SELECT `+vocabularyColumns+`
FROM vocabularies
WHERE `+clause, arg).Scan(&v.ID, &v.Word, &v.Phonetic, &v.Definition, &v.Example, &v.Difficulty, &v.Frequency, &v.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get vocabulary: %v", err)
		return nil, err
	}
	return &v, nil
}

func (r *vocabularyRepository) listQuery(filter models.VocabularyFilter) squirrel.SelectBuilder {
	query := sqlBuilder.Select(vocabularyColumns).From("vocabularies")

	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.MinDifficulty > 0 {
		query = query.Where(squirrel.GtOrEq{"difficulty": filter.MinDifficulty})
	}
	if filter.MaxDifficulty > 0 {
		query = query.Where(squirrel.LtOrEq{"difficulty": filter.MaxDifficulty})
	}
	if filter.Search != "" {
		query = query.Where(squirrel.Like{"word": "%" + filter.Search + "%"})
	}
	return query
}

func (r *vocabularyRepository) List(ctx context.Context, filter models.VocabularyFilter) ([]models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	query := r.listQuery(filter).OrderBy("frequency ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build vocabulary list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list vocabularies: %v", err)
		return nil, err
	}
	defer rows.Close()

	return scanVocabularies(rows, log)
}

func (r *vocabularyRepository) Count(ctx context.Context, filter models.VocabularyFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	query := sqlBuilder.Select("COUNT(*)").From("vocabularies")
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.MinDifficulty > 0 {
		query = query.Where(squirrel.GtOrEq{"difficulty": filter.MinDifficulty})
	}
	if filter.MaxDifficulty > 0 {
		query = query.Where(squirrel.LtOrEq{"difficulty": filter.MaxDifficulty})
	}
	if filter.Search != "" {
		query = query.Where(squirrel.Like{"word": "%" + filter.Search + "%"})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count vocabularies: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *vocabularyRepository) ByIDs(ctx context.Context, ids []int64) (map[int64]models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	out := make(map[int64]models.Vocabulary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sqlStr, args, err := sqlBuilder.
		Select(vocabularyColumns).
		From("vocabularies").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to fetch vocabularies by ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v models.Vocabulary
		if err := rows.Scan(&v.ID, &v.Word, &v.Phonetic, &v.Definition, &v.Example, &v.Difficulty, &v.Frequency, &v.Category); err != nil {
			log.Error("failed to scan vocabulary row: %v", err)
			return nil, err
		}
		out[v.ID] = v
	}
	return out, rows.Err()
}

func (r *vocabularyRepository) UnrecordedForUser(ctx context.Context, userID int64, limit int) ([]models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("fetching unrecorded vocabularies: user_id=%d, limit=%d", userID, limit)

	q := `
SELECT v.id, v.word, v.phonetic, v.definition, v.example, v.difficulty, v.frequency, v.category
FROM vocabularies v
LEFT JOIN word_records r ON r.vocabulary_id = v.id AND r.user_id = ?
WHERE r.id IS NULL
ORDER BY v.frequency ASC, v.id ASC
`
	args := []any{userID}
	if limit > 0 {
		q += "LIMIT ?\n"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to fetch unrecorded vocabularies: %v", err)
		return nil, err
	}
	defer rows.Close()

	return scanVocabularies(rows, log)
}

func (r *vocabularyRepository) RandomByDifficulty(ctx context.Context, minDifficulty, maxDifficulty, limit int) ([]models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("picking random vocabularies: difficulty=[%d,%d], limit=%d", minDifficulty, maxDifficulty, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+vocabularyColumns+`
FROM vocabularies
WHERE difficulty BETWEEN ? AND ?
ORDER BY RANDOM()
LIMIT ?
`, minDifficulty, maxDifficulty, limit)
	if err != nil {
		log.Error("failed to pick random vocabularies: %v", err)
		return nil, err
	}
	defer rows.Close()

	return scanVocabularies(rows, log)
}

func (r *vocabularyRepository) RandomDefinitions(ctx context.Context, excludeID int64, limit int) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT definition
FROM vocabularies
WHERE id != ?
ORDER BY RANDOM()
LIMIT ?
`, excludeID, limit)
	if err != nil {
		log.Error("failed to fetch distractor definitions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var defs []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

func scanVocabularies(rows *sql.Rows, log *logger.Logger) ([]models.Vocabulary, error) {
	var vocabs []models.Vocabulary
	for rows.Next() {
		var v models.Vocabulary
		if err := rows.Scan(&v.ID, &v.Word, &v.Phonetic, &v.Definition, &v.Example, &v.Difficulty, &v.Frequency, &v.Category); err != nil {
			log.Error("failed to scan vocabulary row: %v", err)
			return nil, err
		}
		vocabs = append(vocabs, v)
	}
	return vocabs, rows.Err()
}
