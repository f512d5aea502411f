package repository

import (
	"context"
	"time"

	"github.com/junyi/vocabflash/internal/models"
)

// UserRepository handles learner profile data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) (int64, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRating(ctx context.Context, id int64, rating float64) error
	Delete(ctx context.Context, id int64) error
}

// VocabularyRepository handles vocabulary data access
type VocabularyRepository interface {
	Upsert(ctx context.Context, v models.Vocabulary) (int64, error)
	Get(ctx context.Context, id int64) (*models.Vocabulary, error)
	GetByWord(ctx context.Context, word string) (*models.Vocabulary, error)
	List(ctx context.Context, filter models.VocabularyFilter) ([]models.Vocabulary, error)
	Count(ctx context.Context, filter models.VocabularyFilter) (int, error)
	ByIDs(ctx context.Context, ids []int64) (map[int64]models.Vocabulary, error)
	UnrecordedForUser(ctx context.Context, userID int64, limit int) ([]models.Vocabulary, error)
	RandomByDifficulty(ctx context.Context, minDifficulty, maxDifficulty, limit int) ([]models.Vocabulary, error)
	RandomDefinitions(ctx context.Context, excludeID int64, limit int) ([]string, error)
}

// RecordRepository handles word learning record data access
type RecordRepository interface {
	GetOrCreate(ctx context.Context, userID, vocabularyID int64) (*models.WordRecord, error)
	Update(ctx context.Context, rec models.WordRecord) error
	ListByUser(ctx context.Context, userID int64) ([]models.WordRecord, error)
}

// SessionRepository handles study session data access
type SessionRepository interface {
	Insert(ctx context.Context, userID int64, start time.Time) (int64, error)
	Get(ctx context.Context, id int64) (*models.StudySession, error)
	RecordAttempt(ctx context.Context, id int64, correct bool) error
	End(ctx context.Context, id int64, end time.Time) (*models.StudySession, error)
}

// NotebookRepository handles mistake book data access
type NotebookRepository interface {
	Add(ctx context.Context, userID, wordRecordID int64, note string) error
	ListByUser(ctx context.Context, userID int64) ([]models.NotebookEntryDetail, error)
	Remove(ctx context.Context, userID, entryID int64) (bool, error)
}

// StatsRepository handles statistics data access
type StatsRepository interface {
	UserStats(ctx context.Context, userID int64, now time.Time) (*models.UserStats, error)
}
