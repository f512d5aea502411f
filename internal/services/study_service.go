package services

import (
	"context"
	"time"

	"github.com/junyi/vocabflash/internal/elo"
	"github.com/junyi/vocabflash/internal/errors"
	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/queue"
	"github.com/junyi/vocabflash/internal/repository"
	"github.com/junyi/vocabflash/internal/srs"
	"github.com/junyi/vocabflash/internal/statemachine"
)

// newCandidateFactor controls how many unrecorded words are fetched as
// candidates for the new-word slots; the queue builder ranks them and keeps
// only maxNew.
const newCandidateFactor = 4

// Session cap fallbacks when the configured defaults are unusable.
const (
	fallbackMaxNewPerSession    = 20
	fallbackMaxReviewPerSession = 50
)

// AnswerResult is the outcome of one graded answer.
type AnswerResult struct {
	Record  models.WordRecord `json:"record"`
	Rating  float64           `json:"rating"`
	Correct bool              `json:"correct"`
}

// StudyService handles study-flow business logic: queue assembly, answer
// grading, sessions, forecasts and statistics.
type StudyService interface {
	StudyQueue(ctx context.Context, userID int64, maxNew, maxReview int) ([]queue.Item, error)
	SubmitAnswer(ctx context.Context, userID, vocabularyID, sessionID int64, feedback models.MemoryStatus) (*AnswerResult, error)
	StartSession(ctx context.Context, userID int64) (*models.StudySession, error)
	EndSession(ctx context.Context, userID, sessionID int64) (*models.StudySession, error)
	ReviewForecast(ctx context.Context, userID int64, daysAhead int) (map[int]int, error)
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
	MistakeBook(ctx context.Context, userID int64) ([]models.NotebookEntryDetail, error)
	RemoveMistake(ctx context.Context, userID, entryID int64) error
}

type studyService struct {
	users    repository.UserRepository
	vocabs   repository.VocabularyRepository
	records  repository.RecordRepository
	sessions repository.SessionRepository
	notebook repository.NotebookRepository
	stats    repository.StatsRepository

	engine  *srs.Engine
	adapter *elo.Adapter
	builder *queue.Builder

	maxNew    int
	maxReview int
}

// NewStudyService creates a new StudyService. maxNew and maxReview are the
// per-session caps applied when a caller does not supply positive ones.
func NewStudyService(
	users repository.UserRepository,
	vocabs repository.VocabularyRepository,
	records repository.RecordRepository,
	sessions repository.SessionRepository,
	notebook repository.NotebookRepository,
	stats repository.StatsRepository,
	engine *srs.Engine,
	adapter *elo.Adapter,
	builder *queue.Builder,
	maxNew, maxReview int,
) StudyService {
	if maxNew <= 0 {
		maxNew = fallbackMaxNewPerSession
	}
	if maxReview <= 0 {
		maxReview = fallbackMaxReviewPerSession
	}
	return &studyService{
		users:     users,
		vocabs:    vocabs,
		records:   records,
		sessions:  sessions,
		notebook:  notebook,
		stats:     stats,
		engine:    engine,
		adapter:   adapter,
		builder:   builder,
		maxNew:    maxNew,
		maxReview: maxReview,
	}
}

// StudyQueue assembles the ordered queue for one sitting: due reviews first,
// then new words matched to the user's rating. Words the user has never
// answered have no stored record yet, so ephemeral records are synthesized
// for them; nothing is persisted until the first answer. Non-positive caps
// fall back to the configured per-session defaults, so a caller can never
// request an unbounded queue.
func (s *studyService) StudyQueue(ctx context.Context, userID int64, maxNew, maxReview int) ([]queue.Item, error) {
	log := logger.FromContext(ctx)
	if maxNew <= 0 {
		maxNew = s.maxNew
	}
	if maxReview <= 0 {
		maxReview = s.maxReview
	}
	log.Debug("building study queue: user_id=%d, max_new=%d, max_review=%d", userID, maxNew, maxReview)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list word records: %v", err)
		return nil, errors.NewInternalError(err)
	}

	unrecorded, err := s.vocabs.UnrecordedForUser(ctx, userID, maxNew*newCandidateFactor)
	if err != nil {
		log.Error("failed to list unrecorded vocabularies: %v", err)
		return nil, errors.NewInternalError(err)
	}

	vocabIDs := make([]int64, 0, len(records)+len(unrecorded))
	for _, r := range records {
		vocabIDs = append(vocabIDs, r.VocabularyID)
	}
	for _, v := range unrecorded {
		vocabIDs = append(vocabIDs, v.ID)
		records = append(records, models.NewWordRecord(userID, v.ID))
	}

	vocabMap, err := s.vocabs.ByIDs(ctx, vocabIDs)
	if err != nil {
		log.Error("failed to load vocabularies: %v", err)
		return nil, errors.NewInternalError(err)
	}

	items := s.builder.Build(records, vocabMap, *user, maxNew, maxReview, time.Now())
	log.Debug("study queue built: %d items", len(items))
	return items, nil
}

// SubmitAnswer grades one answer. The scheduling, state and rating updates
// are all computed from the pre-answer snapshot before anything is written,
// so a write failure never leaves a half-applied answer visible to the
// caller's retry.
func (s *studyService) SubmitAnswer(ctx context.Context, userID, vocabularyID, sessionID int64, feedback models.MemoryStatus) (*AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: user_id=%d, vocabulary_id=%d, feedback=%s", userID, vocabularyID, feedback)

	if !feedback.IsAnswer() {
		return nil, errors.NewValidationError("feedback", "must be 'easy', 'medium' or 'hard'")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	vocab, err := s.vocabs.Get(ctx, vocabularyID)
	if err != nil {
		log.Error("failed to get vocabulary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if vocab == nil {
		return nil, errors.NewNotFoundError("vocabulary", vocabularyID)
	}

	var session *models.StudySession
	if sessionID > 0 {
		session, err = s.ongoingSession(ctx, userID, sessionID)
		if err != nil {
			return nil, err
		}
	}

	rec, err := s.records.GetOrCreate(ctx, userID, vocabularyID)
	if err != nil {
		log.Error("failed to get or create word record: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := time.Now()

	// All three updates are derived from the same pre-answer snapshot.
	review, err := s.engine.ComputeNext(*rec, feedback, now)
	if err != nil {
		return nil, errors.NewInvalidArgumentError(err)
	}
	nextState, err := statemachine.Next(rec.State, feedback)
	if err != nil {
		return nil, errors.NewInvalidArgumentError(err)
	}
	correct := feedback.IsCorrect()
	newRating := s.adapter.UpdateRating(user.Rating, vocab.Difficulty, correct)

	rec.Status = feedback
	rec.Easiness = review.Easiness
	rec.Interval = review.Interval
	rec.Repetitions = review.Repetitions
	rec.NextReview = &review.NextReview
	rec.LastReview = &now
	rec.State = nextState

	if err := s.records.Update(ctx, *rec); err != nil {
		log.Error("failed to update word record: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.users.UpdateRating(ctx, userID, newRating); err != nil {
		log.Error("failed to update user rating: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// A HARD answer lands the word in the mistake book.
	if feedback == models.StatusHard {
		if err := s.notebook.Add(ctx, userID, rec.ID, ""); err != nil {
			log.Warn("failed to add mistake book entry: %v", err)
		}
	}

	if session != nil {
		if err := s.sessions.RecordAttempt(ctx, session.ID, correct); err != nil {
			log.Warn("failed to record session attempt: %v", err)
		}
	}

	log.Debug("answer applied: state=%s, interval=%d days, rating=%.1f", nextState, review.Interval, newRating)
	return &AnswerResult{Record: *rec, Rating: newRating, Correct: correct}, nil
}

func (s *studyService) StartSession(ctx context.Context, userID int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting study session: user_id=%d", userID)

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	id, err := s.sessions.Insert(ctx, userID, time.Now())
	if err != nil {
		log.Error("failed to create study session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		log.Error("failed to load study session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("study session started: id=%d, user_id=%d", id, userID)
	return session, nil
}

func (s *studyService) EndSession(ctx context.Context, userID, sessionID int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("ending study session: session_id=%d", sessionID)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to get study session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("study session", sessionID)
	}
	if session.UserID != userID {
		return nil, errors.NewValidationError("session", "session does not belong to user")
	}
	if !session.IsOngoing() {
		return session, nil
	}

	ended, err := s.sessions.End(ctx, sessionID, time.Now())
	if err != nil {
		log.Error("failed to end study session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("study session ended: id=%d, studied=%d, correct_rate=%.2f", sessionID, ended.WordsStudied, ended.CorrectRate)
	return ended, nil
}

// ReviewForecast returns the number of reviews coming due per day offset
// (0 = today) over the next daysAhead days.
func (s *studyService) ReviewForecast(ctx context.Context, userID int64, daysAhead int) (map[int]int, error) {
	log := logger.FromContext(ctx)
	log.Debug("estimating review load: user_id=%d, days=%d", userID, daysAhead)

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list word records: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.engine.EstimateLoad(records, time.Now(), daysAhead), nil
}

func (s *studyService) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user stats: user_id=%d", userID)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.UserStats(ctx, userID, time.Now())
	if err != nil {
		log.Error("failed to get user stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats.Rating = user.Rating
	stats.PerformanceLevel = s.adapter.PerformanceLevel(user.Rating)
	recommended, err := s.adapter.RecommendDifficulty(user.Rating, s.adapter.TargetSuccessRate())
	if err != nil {
		// Adapter construction guarantees a valid target rate.
		return nil, errors.NewInternalError(err)
	}
	stats.RecommendedDifficulty = recommended

	return stats, nil
}

func (s *studyService) MistakeBook(ctx context.Context, userID int64) ([]models.NotebookEntryDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing mistake book: user_id=%d", userID)

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.notebook.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list mistake book: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

func (s *studyService) RemoveMistake(ctx context.Context, userID, entryID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("removing mistake book entry: user_id=%d, entry_id=%d", userID, entryID)

	removed, err := s.notebook.Remove(ctx, userID, entryID)
	if err != nil {
		log.Error("failed to remove mistake book entry: %v", err)
		return errors.NewInternalError(err)
	}
	if !removed {
		return errors.NewNotFoundError("mistake book entry", entryID)
	}
	return nil
}

func (s *studyService) getUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}

func (s *studyService) ongoingSession(ctx context.Context, userID, sessionID int64) (*models.StudySession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get study session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("study session", sessionID)
	}
	if session.UserID != userID {
		return nil, errors.NewValidationError("session", "session does not belong to user")
	}
	if !session.IsOngoing() {
		return nil, errors.NewValidationError("session", "session is already ended")
	}
	return session, nil
}
