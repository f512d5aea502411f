package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/junyi/vocabflash/internal/elo"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/queue"
	"github.com/junyi/vocabflash/internal/services"
	"github.com/junyi/vocabflash/internal/srs"
	"github.com/junyi/vocabflash/internal/testutil/mocks"
)

type studyFixture struct {
	users    *mocks.MockUserRepository
	vocabs   *mocks.MockVocabularyRepository
	records  *mocks.MockRecordRepository
	sessions *mocks.MockSessionRepository
	notebook *mocks.MockNotebookRepository
	stats    *mocks.MockStatsRepository
	svc      services.StudyService
}

func newStudyFixture() *studyFixture {
	f := &studyFixture{
		users:    new(mocks.MockUserRepository),
		vocabs:   new(mocks.MockVocabularyRepository),
		records:  new(mocks.MockRecordRepository),
		sessions: new(mocks.MockSessionRepository),
		notebook: new(mocks.MockNotebookRepository),
		stats:    new(mocks.MockStatsRepository),
	}
	engine := srs.NewEngine()
	adapter := elo.NewAdapter(32, 0.7)
	builder := queue.NewBuilder(engine, adapter, 0.7)
	f.svc = services.NewStudyService(f.users, f.vocabs, f.records, f.sessions, f.notebook, f.stats, engine, adapter, builder, 20, 50)
	return f
}

func TestSubmitAnswer_EasyOnFreshRecord(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	user := &models.User{ID: 1, Name: "alice", Rating: 1000}
	vocab := &models.Vocabulary{ID: 7, Word: "serendipity", Difficulty: 3}
	rec := models.NewWordRecord(1, 7)
	rec.ID = 42

	f.users.On("Get", ctx, int64(1)).Return(user, nil)
	f.vocabs.On("Get", ctx, int64(7)).Return(vocab, nil)
	f.records.On("GetOrCreate", ctx, int64(1), int64(7)).Return(&rec, nil)

	var updated models.WordRecord
	f.records.On("Update", ctx, mock.AnythingOfType("models.WordRecord")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(models.WordRecord) }).
		Return(nil)

	var newRating float64
	f.users.On("UpdateRating", ctx, int64(1), mock.AnythingOfType("float64")).
		Run(func(args mock.Arguments) { newRating = args.Get(2).(float64) }).
		Return(nil)

	result, err := f.svc.SubmitAnswer(ctx, 1, 7, 0, models.StatusEasy)
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, models.StatusEasy, updated.Status)
	assert.Equal(t, models.StateLearning, updated.State)
	assert.Equal(t, 1, updated.Interval)
	assert.Equal(t, 1, updated.Repetitions)
	assert.InDelta(t, 2.6, updated.Easiness, 1e-9)
	require.NotNil(t, updated.NextReview)
	require.NotNil(t, updated.LastReview)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 1), *updated.NextReview, 5*time.Second)

	// Difficulty 3 maps to the user's own rating, so the win is worth K/2.
	assert.InDelta(t, 1016.0, newRating, 1e-9)
	assert.InDelta(t, newRating, result.Rating, 1e-9)

	f.notebook.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.sessions.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswer_HardResetsAndFilesMistake(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	user := &models.User{ID: 1, Rating: 1000}
	vocab := &models.Vocabulary{ID: 7, Word: "ubiquitous", Difficulty: 3}
	rec := models.WordRecord{
		ID: 42, UserID: 1, VocabularyID: 7,
		Status: models.StatusEasy, Easiness: 2.6, Interval: 6, Repetitions: 2,
		State: models.StateReview,
	}

	f.users.On("Get", ctx, int64(1)).Return(user, nil)
	f.vocabs.On("Get", ctx, int64(7)).Return(vocab, nil)
	f.records.On("GetOrCreate", ctx, int64(1), int64(7)).Return(&rec, nil)

	var updated models.WordRecord
	f.records.On("Update", ctx, mock.AnythingOfType("models.WordRecord")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(models.WordRecord) }).
		Return(nil)

	var newRating float64
	f.users.On("UpdateRating", ctx, int64(1), mock.AnythingOfType("float64")).
		Run(func(args mock.Arguments) { newRating = args.Get(2).(float64) }).
		Return(nil)
	f.notebook.On("Add", ctx, int64(1), int64(42), "").Return(nil)

	result, err := f.svc.SubmitAnswer(ctx, 1, 7, 0, models.StatusHard)
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, models.StateLearning, updated.State)
	assert.Equal(t, 1, updated.Interval)
	assert.Equal(t, 0, updated.Repetitions)
	assert.InDelta(t, 2.06, updated.Easiness, 1e-9)
	assert.InDelta(t, 984.0, newRating, 1e-9)

	f.notebook.AssertExpectations(t)
}

func TestSubmitAnswer_RejectsInvalidFeedback(t *testing.T) {
	f := newStudyFixture()

	_, err := f.svc.SubmitAnswer(context.Background(), 1, 7, 0, models.StatusUnknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")

	f.records.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswer_UnknownUser(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	f.users.On("Get", ctx, int64(99)).Return(nil, nil)

	_, err := f.svc.SubmitAnswer(ctx, 99, 7, 0, models.StatusEasy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestSubmitAnswer_RecordsSessionAttempt(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	f.users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, Rating: 1000}, nil)
	f.vocabs.On("Get", ctx, int64(7)).Return(&models.Vocabulary{ID: 7, Difficulty: 3}, nil)
	f.sessions.On("Get", ctx, int64(5)).Return(&models.StudySession{ID: 5, UserID: 1, StartTime: time.Now()}, nil)

	rec := models.NewWordRecord(1, 7)
	rec.ID = 42
	f.records.On("GetOrCreate", ctx, int64(1), int64(7)).Return(&rec, nil)
	f.records.On("Update", ctx, mock.AnythingOfType("models.WordRecord")).Return(nil)
	f.users.On("UpdateRating", ctx, int64(1), mock.AnythingOfType("float64")).Return(nil)
	f.sessions.On("RecordAttempt", ctx, int64(5), true).Return(nil)

	_, err := f.svc.SubmitAnswer(ctx, 1, 7, 5, models.StatusMedium)
	require.NoError(t, err)

	f.sessions.AssertExpectations(t)
}

func TestSubmitAnswer_EndedSessionRejectedBeforeAnyWrite(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	ended := time.Now().Add(-time.Hour)
	f.users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, Rating: 1000}, nil)
	f.vocabs.On("Get", ctx, int64(7)).Return(&models.Vocabulary{ID: 7, Difficulty: 3}, nil)
	f.sessions.On("Get", ctx, int64(5)).Return(&models.StudySession{ID: 5, UserID: 1, EndTime: &ended}, nil)

	_, err := f.svc.SubmitAnswer(ctx, 1, 7, 5, models.StatusEasy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")

	f.records.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestStudyQueue_ReviewsFirstThenRankedNewWords(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	now := time.Now()
	due := now.Add(-time.Hour)
	future := now.Add(48 * time.Hour)

	user := &models.User{ID: 1, Rating: 1000}
	records := []models.WordRecord{
		{ID: 10, UserID: 1, VocabularyID: 100, Status: models.StatusEasy, NextReview: &due, State: models.StateReview},
		{ID: 11, UserID: 1, VocabularyID: 101, Status: models.StatusEasy, NextReview: &future, State: models.StateReview},
	}
	// Difficulty 2 sits closest to a 70% expected success rate for a
	// 1000-rated user, so it must win the single new-word slot.
	unrecorded := []models.Vocabulary{
		{ID: 200, Word: "harder", Difficulty: 3, Frequency: 1},
		{ID: 201, Word: "fitting", Difficulty: 2, Frequency: 2},
	}
	vocabMap := map[int64]models.Vocabulary{
		100: {ID: 100, Word: "due-word", Difficulty: 3},
		101: {ID: 101, Word: "future-word", Difficulty: 3},
		200: unrecorded[0],
		201: unrecorded[1],
	}

	f.users.On("Get", ctx, int64(1)).Return(user, nil)
	f.records.On("ListByUser", ctx, int64(1)).Return(records, nil)
	f.vocabs.On("UnrecordedForUser", ctx, int64(1), 4).Return(unrecorded, nil)
	f.vocabs.On("ByIDs", ctx, mock.AnythingOfType("[]int64")).Return(vocabMap, nil)

	items, err := f.svc.StudyQueue(ctx, 1, 1, 10)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.False(t, items[0].IsNew)
	assert.Equal(t, int64(100), items[0].Vocabulary.ID)
	assert.True(t, items[1].IsNew)
	assert.Equal(t, int64(201), items[1].Vocabulary.ID)
	assert.True(t, items[1].Record.IsNew())
}

func TestStudyQueue_ZeroCapsFallBackToConfiguredDefaults(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	unrecorded := make([]models.Vocabulary, 0, 25)
	vocabMap := make(map[int64]models.Vocabulary, 25)
	for i := int64(1); i <= 25; i++ {
		v := models.Vocabulary{ID: i, Word: "word", Difficulty: 3, Frequency: int(i)}
		unrecorded = append(unrecorded, v)
		vocabMap[i] = v
	}

	f.users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, Rating: 1000}, nil)
	f.records.On("ListByUser", ctx, int64(1)).Return([]models.WordRecord{}, nil)
	// A zero cap must not mean unlimited: the candidate fetch stays bounded
	// by the default cap (20) times the candidate factor.
	f.vocabs.On("UnrecordedForUser", ctx, int64(1), 80).Return(unrecorded, nil)
	f.vocabs.On("ByIDs", ctx, mock.AnythingOfType("[]int64")).Return(vocabMap, nil)

	items, err := f.svc.StudyQueue(ctx, 1, 0, 0)
	require.NoError(t, err)

	assert.Len(t, items, 20)
	f.vocabs.AssertExpectations(t)
}

func TestReviewForecast(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	tomorrow := time.Now().AddDate(0, 0, 1)
	records := []models.WordRecord{
		{ID: 1, VocabularyID: 100, NextReview: &tomorrow, Status: models.StatusEasy},
	}

	f.users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	f.records.On("ListByUser", ctx, int64(1)).Return(records, nil)

	load, err := f.svc.ReviewForecast(ctx, 1, 3)
	require.NoError(t, err)

	require.Len(t, load, 4)
	assert.Equal(t, 0, load[0])
	assert.Equal(t, 1, load[1])
	assert.Equal(t, 0, load[2])
}

func TestUserStats_FillsRatingDerivedFields(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	f.users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, Rating: 1000}, nil)
	f.stats.On("UserStats", ctx, int64(1), mock.AnythingOfType("time.Time")).
		Return(&models.UserStats{TotalStudied: 12, Mastered: 3, Learning: 5, DueForReview: 4, CorrectRate: 0.8}, nil)

	stats, err := f.svc.UserStats(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalStudied)
	assert.Equal(t, 1000.0, stats.Rating)
	assert.Equal(t, 2, stats.RecommendedDifficulty)
	assert.Equal(t, "elementary", stats.PerformanceLevel)
}

func TestStartAndEndSession(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	f.users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	f.sessions.On("Insert", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(int64(5), nil)
	started := &models.StudySession{ID: 5, UserID: 1, StartTime: time.Now()}
	f.sessions.On("Get", ctx, int64(5)).Return(started, nil)

	session, err := f.svc.StartSession(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), session.ID)

	endTime := time.Now()
	endedSession := &models.StudySession{ID: 5, UserID: 1, EndTime: &endTime, WordsStudied: 3, CorrectCount: 2}
	f.sessions.On("End", ctx, int64(5), mock.AnythingOfType("time.Time")).Return(endedSession, nil)

	ended, err := f.svc.EndSession(ctx, 1, 5)
	require.NoError(t, err)
	assert.False(t, ended.IsOngoing())
	assert.Equal(t, 3, ended.WordsStudied)
}

func TestEndSession_WrongUser(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	f.sessions.On("Get", ctx, int64(5)).Return(&models.StudySession{ID: 5, UserID: 2}, nil)

	_, err := f.svc.EndSession(ctx, 1, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestRemoveMistake_NotFound(t *testing.T) {
	f := newStudyFixture()
	ctx := context.Background()

	f.notebook.On("Remove", ctx, int64(1), int64(9)).Return(false, nil)

	err := f.svc.RemoveMistake(ctx, 1, 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}
