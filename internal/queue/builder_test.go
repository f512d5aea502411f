package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyi/vocabflash/internal/elo"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/queue"
	"github.com/junyi/vocabflash/internal/srs"
	"github.com/junyi/vocabflash/internal/statemachine"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newBuilder() *queue.Builder {
	return queue.NewBuilder(srs.NewEngine(), elo.NewAdapter(elo.DefaultKFactor, elo.DefaultTargetSuccessRate), 0.7)
}

func vocabMap(vocabs ...models.Vocabulary) map[int64]models.Vocabulary {
	m := make(map[int64]models.Vocabulary, len(vocabs))
	for _, v := range vocabs {
		m[v.ID] = v
	}
	return m
}

func TestBuild_ReviewsBeforeNewWords(t *testing.T) {
	b := newBuilder()

	past := now.Add(-time.Hour)
	records := []models.WordRecord{
		{ID: 1, VocabularyID: 10, Status: models.StatusUnknown},
		{ID: 2, VocabularyID: 20, Status: models.StatusMedium, NextReview: &past},
	}
	vocabs := vocabMap(
		models.Vocabulary{ID: 10, Word: "abandon", Difficulty: 3},
		models.Vocabulary{ID: 20, Word: "benevolent", Difficulty: 5},
	)

	items := b.Build(records, vocabs, models.User{Rating: 1000}, 10, 10, now)
	require.Len(t, items, 2)
	assert.Equal(t, "benevolent", items[0].Vocabulary.Word, "due review comes first")
	assert.False(t, items[0].IsNew)
	assert.Equal(t, "abandon", items[1].Vocabulary.Word)
	assert.True(t, items[1].IsNew)
}

func TestBuild_DueOrderAndCap(t *testing.T) {
	b := newBuilder()

	old := now.Add(-72 * time.Hour)
	mid := now.Add(-24 * time.Hour)
	late := now.Add(-time.Minute)
	records := []models.WordRecord{
		{ID: 1, VocabularyID: 1, Status: models.StatusEasy, NextReview: &late},
		{ID: 2, VocabularyID: 2, Status: models.StatusEasy, NextReview: &old},
		{ID: 3, VocabularyID: 3, Status: models.StatusEasy, NextReview: &mid},
	}
	vocabs := vocabMap(
		models.Vocabulary{ID: 1, Word: "late"},
		models.Vocabulary{ID: 2, Word: "old"},
		models.Vocabulary{ID: 3, Word: "mid"},
	)

	items := b.Build(records, vocabs, models.User{Rating: 1000}, 0, 2, now)
	require.Len(t, items, 2)
	assert.Equal(t, "old", items[0].Vocabulary.Word)
	assert.Equal(t, "mid", items[1].Vocabulary.Word)
}

func TestBuild_NewWordsRankedTowardTarget(t *testing.T) {
	b := newBuilder()

	// Rating 1000: difficulty 2 (800) gives ~0.76, difficulty 3 (1000)
	// gives 0.5, difficulty 5 (1400) gives ~0.09. Closest to 0.7 wins.
	records := []models.WordRecord{
		{ID: 1, VocabularyID: 1, Status: models.StatusUnknown},
		{ID: 2, VocabularyID: 2, Status: models.StatusUnknown},
		{ID: 3, VocabularyID: 3, Status: models.StatusUnknown},
	}
	vocabs := vocabMap(
		models.Vocabulary{ID: 1, Word: "hard", Difficulty: 5},
		models.Vocabulary{ID: 2, Word: "easy", Difficulty: 2},
		models.Vocabulary{ID: 3, Word: "middling", Difficulty: 3},
	)

	items := b.Build(records, vocabs, models.User{Rating: 1000}, 10, 10, now)
	require.Len(t, items, 3)
	assert.Equal(t, "easy", items[0].Vocabulary.Word)
	assert.Equal(t, "middling", items[1].Vocabulary.Word)
	assert.Equal(t, "hard", items[2].Vocabulary.Word)
}

func TestBuild_NewWordTiesKeepInputOrder(t *testing.T) {
	b := newBuilder()

	records := []models.WordRecord{
		{ID: 1, VocabularyID: 1, Status: models.StatusUnknown},
		{ID: 2, VocabularyID: 2, Status: models.StatusUnknown},
		{ID: 3, VocabularyID: 3, Status: models.StatusUnknown},
	}
	// Identical difficulties are exactly equidistant from the target.
	vocabs := vocabMap(
		models.Vocabulary{ID: 1, Word: "first", Difficulty: 4},
		models.Vocabulary{ID: 2, Word: "second", Difficulty: 4},
		models.Vocabulary{ID: 3, Word: "third", Difficulty: 4},
	)

	items := b.Build(records, vocabs, models.User{Rating: 1000}, 10, 10, now)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Vocabulary.Word)
	assert.Equal(t, "second", items[1].Vocabulary.Word)
	assert.Equal(t, "third", items[2].Vocabulary.Word)
}

func TestBuild_MaxNewCapAppliedAfterRanking(t *testing.T) {
	b := newBuilder()

	var records []models.WordRecord
	vocabs := map[int64]models.Vocabulary{}
	for i := int64(1); i <= 5; i++ {
		records = append(records, models.WordRecord{ID: i, VocabularyID: i, Status: models.StatusUnknown})
		vocabs[i] = models.Vocabulary{ID: i, Difficulty: int(i)}
	}

	items := b.Build(records, vocabs, models.User{Rating: 1000}, 3, 10, now)
	require.Len(t, items, 3, "0 due and 5 new with maxNew=3 yields exactly 3 items")
	for _, it := range items {
		assert.True(t, it.IsNew)
	}
	// Difficulty 2 (expected ~0.76) is the closest to 0.7 for rating 1000.
	assert.Equal(t, 2, items[0].Vocabulary.Difficulty)
}

func TestBuild_EmptyInputs(t *testing.T) {
	b := newBuilder()

	assert.Empty(t, b.Build(nil, nil, models.User{Rating: 1000}, 10, 10, now))
}

func TestBuild_SkipsRecordsWithoutVocabulary(t *testing.T) {
	b := newBuilder()

	past := now.Add(-time.Hour)
	records := []models.WordRecord{
		{ID: 1, VocabularyID: 999, Status: models.StatusMedium, NextReview: &past},
		{ID: 2, VocabularyID: 998, Status: models.StatusUnknown},
	}

	assert.Empty(t, b.Build(records, map[int64]models.Vocabulary{}, models.User{Rating: 1000}, 10, 10, now))
}

func TestBuild_DanglingRecordsDoNotConsumeReviewSlots(t *testing.T) {
	b := newBuilder()

	old := now.Add(-72 * time.Hour)
	mid := now.Add(-24 * time.Hour)
	late := now.Add(-time.Minute)
	records := []models.WordRecord{
		{ID: 1, VocabularyID: 1, Status: models.StatusEasy, NextReview: &old},
		{ID: 2, VocabularyID: 999, Status: models.StatusEasy, NextReview: &mid},
		{ID: 3, VocabularyID: 3, Status: models.StatusEasy, NextReview: &late},
	}
	// The record due in the middle has no vocabulary entry; the later one
	// must still fill the second review slot.
	vocabs := vocabMap(
		models.Vocabulary{ID: 1, Word: "old"},
		models.Vocabulary{ID: 3, Word: "late"},
	)

	items := b.Build(records, vocabs, models.User{Rating: 1000}, 0, 2, now)
	require.Len(t, items, 2)
	assert.Equal(t, "old", items[0].Vocabulary.Word)
	assert.Equal(t, "late", items[1].Vocabulary.Word)
}

// Three EASY answers in a row walk a fresh card through the whole ladder:
// interval 1 → 6 → floor(6*EF), state NEW → LEARNING → REVIEW → MASTERED.
func TestFullProgression_ThreeEasyAnswers(t *testing.T) {
	engine := srs.NewEngine()

	rec := models.NewWordRecord(1, 1)
	current := now

	wantIntervals := []int{1, 6}
	wantStates := []models.WordState{models.StateLearning, models.StateReview, models.StateMastered}

	prevEasiness := rec.Easiness
	for step := 0; step < 3; step++ {
		rev, err := engine.ComputeNext(rec, models.StatusEasy, current)
		require.NoError(t, err)

		next, err := statemachine.Next(rec.State, models.StatusEasy)
		require.NoError(t, err)

		if step < 2 {
			assert.Equal(t, wantIntervals[step], rev.Interval)
		} else {
			assert.Equal(t, int(6*rev.Easiness), rev.Interval)
		}
		assert.Equal(t, wantStates[step], next)
		assert.Greater(t, rev.Easiness, prevEasiness, "easiness should rise each EASY step")

		prevEasiness = rev.Easiness
		rec.Easiness = rev.Easiness
		rec.Interval = rev.Interval
		rec.Repetitions = rev.Repetitions
		rec.State = next
		nr := rev.NextReview
		rec.NextReview = &nr
		current = rev.NextReview
	}
}
