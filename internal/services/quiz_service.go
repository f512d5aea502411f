package services

import (
	"context"
	"math/rand"

	"github.com/junyi/vocabflash/internal/elo"
	"github.com/junyi/vocabflash/internal/errors"
	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/repository"
)

const (
	quizOptionCount      = 4
	quizDifficultySpan   = 1
	quizAdjustMinSamples = 5
	defaultQuizSize      = 10
	maxQuizSize          = 50
)

// QuizQuestion is one multiple-choice question: a word and four candidate
// definitions, exactly one of which is correct.
type QuizQuestion struct {
	VocabularyID int64    `json:"vocabulary_id"`
	Word         string   `json:"word"`
	Phonetic     string   `json:"phonetic"`
	Difficulty   int      `json:"difficulty"`
	Options      []string `json:"options"`
	Answer       int      `json:"answer"` // index into Options
}

// QuizResult is one answered question as reported by the client.
type QuizResult struct {
	VocabularyID int64 `json:"vocabulary_id"`
	Correct      bool  `json:"correct"`
}

// QuizOutcome summarizes a submitted quiz round.
type QuizOutcome struct {
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Rating     float64 `json:"rating"`
	Adjustment string  `json:"adjustment"` // "harder", "easier" or "none"
}

// QuizService handles multiple-choice quiz rounds, a lighter-weight drill
// than the flashcard flow. Quiz answers move the Elo rating but do not touch
// the spaced repetition schedule.
type QuizService interface {
	GenerateQuiz(ctx context.Context, userID int64, size int) ([]QuizQuestion, error)
	SubmitResults(ctx context.Context, userID int64, results []QuizResult) (*QuizOutcome, error)
}

type quizService struct {
	users   repository.UserRepository
	vocabs  repository.VocabularyRepository
	adapter *elo.Adapter
}

// NewQuizService creates a new QuizService
func NewQuizService(users repository.UserRepository, vocabs repository.VocabularyRepository, adapter *elo.Adapter) QuizService {
	return &quizService{users: users, vocabs: vocabs, adapter: adapter}
}

// GenerateQuiz picks words around the user's recommended difficulty and
// builds one question per word, with distractor definitions drawn from the
// rest of the vocabulary.
func (s *quizService) GenerateQuiz(ctx context.Context, userID int64, size int) ([]QuizQuestion, error) {
	log := logger.FromContext(ctx)
	log.Debug("generating quiz: user_id=%d, size=%d", userID, size)

	if size <= 0 {
		size = defaultQuizSize
	}
	if size > maxQuizSize {
		size = maxQuizSize
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	lo, hi := s.adapter.DifficultyRange(user.Rating, quizDifficultySpan)
	words, err := s.vocabs.RandomByDifficulty(ctx, lo, hi, size)
	if err != nil {
		log.Error("failed to pick quiz words: %v", err)
		return nil, errors.NewInternalError(err)
	}

	questions := make([]QuizQuestion, 0, len(words))
	for _, w := range words {
		distractors, err := s.vocabs.RandomDefinitions(ctx, w.ID, quizOptionCount-1)
		if err != nil {
			log.Error("failed to pick distractors: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if len(distractors) < quizOptionCount-1 {
			// Not enough vocabulary for a full option set; skip the word.
			log.Warn("skipping quiz word %q: only %d distractors available", w.Word, len(distractors))
			continue
		}

		options := append([]string{w.Definition}, distractors...)
		answer := 0
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
			switch answer {
			case i:
				answer = j
			case j:
				answer = i
			}
		})

		questions = append(questions, QuizQuestion{
			VocabularyID: w.ID,
			Word:         w.Word,
			Phonetic:     w.Phonetic,
			Difficulty:   w.Difficulty,
			Options:      options,
			Answer:       answer,
		})
	}

	log.Debug("quiz generated: %d questions (difficulty %d-%d)", len(questions), lo, hi)
	return questions, nil
}

// SubmitResults folds a whole quiz round into the user's rating in the order
// the questions were answered.
func (s *quizService) SubmitResults(ctx context.Context, userID int64, results []QuizResult) (*QuizOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting quiz results: user_id=%d, count=%d", userID, len(results))

	if len(results) == 0 {
		return nil, errors.NewValidationError("results", "must not be empty")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	ids := make([]int64, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.VocabularyID)
	}
	vocabMap, err := s.vocabs.ByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load vocabularies: %v", err)
		return nil, errors.NewInternalError(err)
	}

	outcomes := make([]elo.Outcome, 0, len(results))
	recent := make([]bool, 0, len(results))
	correct := 0
	for _, r := range results {
		v, ok := vocabMap[r.VocabularyID]
		if !ok {
			return nil, errors.NewNotFoundError("vocabulary", r.VocabularyID)
		}
		outcomes = append(outcomes, elo.Outcome{Difficulty: v.Difficulty, Correct: r.Correct})
		recent = append(recent, r.Correct)
		if r.Correct {
			correct++
		}
	}

	rating := s.adapter.BatchUpdate(user.Rating, outcomes)
	if err := s.users.UpdateRating(ctx, userID, rating); err != nil {
		log.Error("failed to update user rating: %v", err)
		return nil, errors.NewInternalError(err)
	}

	_, adjustment := s.adapter.ShouldAdjustDifficulty(recent, quizAdjustMinSamples)

	log.Info("quiz submitted: user_id=%d, correct=%d/%d, rating=%.1f", userID, correct, len(results), rating)
	return &QuizOutcome{
		Total:      len(results),
		Correct:    correct,
		Rating:     rating,
		Adjustment: adjustment,
	}, nil
}
