package elo

import (
	"errors"
	"math"
)

// ErrInvalidTargetRate is returned when a target success rate falls outside
// the open interval (0, 1), where the inverse logistic formula is undefined.
var ErrInvalidTargetRate = errors.New("elo: target success rate must be strictly between 0 and 1")

// Defaults shared with config.
const (
	DefaultKFactor           = 32.0
	DefaultTargetSuccessRate = 0.7
	InitialRating            = 1000.0
)

// difficultyRatings maps difficulty levels 1..10 to the Elo scale.
// Index i holds the rating for difficulty i+1.
var difficultyRatings = [10]float64{600, 800, 1000, 1200, 1400, 1600, 1800, 2000, 2200, 2400}

// Outcome is one graded attempt: the word's difficulty and whether the
// answer was correct.
type Outcome struct {
	Difficulty int
	Correct    bool
}

// Adapter implements Elo-style difficulty adaptation:
//
//	expected:  P = 1 / (1 + 10^((Rword - Ruser)/400))
//	update:    R' = R + K * (actual - expected)
//
// The adapter carries only fixed configuration; every operation takes the
// current rating explicitly.
type Adapter struct {
	kFactor    float64
	targetRate float64
}

// NewAdapter returns an Adapter with the given K factor and default target
// success rate. Non-positive arguments fall back to the defaults.
func NewAdapter(kFactor, targetRate float64) *Adapter {
	if kFactor <= 0 {
		kFactor = DefaultKFactor
	}
	if targetRate <= 0 || targetRate >= 1 {
		targetRate = DefaultTargetSuccessRate
	}
	return &Adapter{kFactor: kFactor, targetRate: targetRate}
}

// TargetSuccessRate returns the configured default target success rate.
func (a *Adapter) TargetSuccessRate() float64 {
	return a.targetRate
}

// DifficultyRating converts a difficulty level to its Elo rating.
// Levels outside 1..10 map to the 1000 baseline.
func DifficultyRating(difficulty int) float64 {
	if difficulty < 1 || difficulty > len(difficultyRatings) {
		return 1000
	}
	return difficultyRatings[difficulty-1]
}

// ExpectedScore is the probability that a user with the given rating answers
// a word of the given difficulty correctly. Always in (0, 1), increasing in
// the user rating and decreasing in the difficulty.
func (a *Adapter) ExpectedScore(userRating float64, difficulty int) float64 {
	exponent := (DifficultyRating(difficulty) - userRating) / 400
	return 1.0 / (1.0 + math.Pow(10, exponent))
}

// UpdateRating applies one attempt's result to the user rating. The result
// is intentionally unclamped.
func (a *Adapter) UpdateRating(userRating float64, difficulty int, correct bool) float64 {
	expected := a.ExpectedScore(userRating, difficulty)
	actual := 0.0
	if correct {
		actual = 1.0
	}
	return userRating + a.kFactor*(actual-expected)
}

// BatchUpdate folds an ordered sequence of outcomes into the rating, each
// update feeding the next. Order matters.
func (a *Adapter) BatchUpdate(userRating float64, outcomes []Outcome) float64 {
	rating := userRating
	for _, o := range outcomes {
		rating = a.UpdateRating(rating, o.Difficulty, o.Correct)
	}
	return rating
}

// RecommendDifficulty inverts the expected-score formula to find the
// difficulty level whose rating is numerically closest to the one that would
// yield the target success rate. Levels are scanned 1..10 in order, so an
// equidistant tie resolves to the smaller level.
func (a *Adapter) RecommendDifficulty(userRating, targetRate float64) (int, error) {
	if targetRate <= 0 || targetRate >= 1 {
		return 0, ErrInvalidTargetRate
	}

	targetRating := userRating + 400*math.Log10(1/targetRate-1)

	best := 1
	bestDiff := math.Inf(1)
	for level := 1; level <= len(difficultyRatings); level++ {
		diff := math.Abs(difficultyRatings[level-1] - targetRating)
		if diff < bestDiff {
			bestDiff = diff
			best = level
		}
	}
	return best, nil
}

// DifficultyRange returns [recommended-span, recommended+span] clipped to
// [1, 10], using the configured target success rate.
func (a *Adapter) DifficultyRange(userRating float64, span int) (int, int) {
	recommended, err := a.RecommendDifficulty(userRating, a.targetRate)
	if err != nil {
		// Constructor guarantees the configured target is valid.
		recommended = 5
	}
	lo := recommended - span
	if lo < 1 {
		lo = 1
	}
	hi := recommended + span
	if hi > 10 {
		hi = 10
	}
	return lo, hi
}

// PerformanceLevel buckets a rating into a coarse ability label.
func (a *Adapter) PerformanceLevel(userRating float64) string {
	switch {
	case userRating < 800:
		return "beginner"
	case userRating < 1200:
		return "elementary"
	case userRating < 1600:
		return "intermediate"
	case userRating < 2000:
		return "advanced"
	default:
		return "expert"
	}
}

// SessionRating updates a rating from session aggregates instead of single
// attempts, scaling K by session size capped at ten questions' worth.
func (a *Adapter) SessionRating(userRating float64, correctCount, totalCount int, averageDifficulty float64) float64 {
	if totalCount == 0 {
		return userRating
	}

	successRate := float64(correctCount) / float64(totalCount)
	expected := a.ExpectedScore(userRating, int(math.Round(averageDifficulty)))

	scaledK := a.kFactor * math.Min(1.0, float64(totalCount)/10)
	return userRating + scaledK*(successRate-expected)
}

// ShouldAdjustDifficulty inspects recent results and suggests a direction:
// "harder" when the success rate is >= 0.9, "easier" when <= 0.4, otherwise
// "none". At least minSamples results are needed for a verdict.
func (a *Adapter) ShouldAdjustDifficulty(recent []bool, minSamples int) (bool, string) {
	if len(recent) < minSamples {
		return false, "none"
	}

	correct := 0
	for _, r := range recent {
		if r {
			correct++
		}
	}
	rate := float64(correct) / float64(len(recent))

	switch {
	case rate >= 0.9:
		return true, "harder"
	case rate <= 0.4:
		return true, "easier"
	default:
		return false, "none"
	}
}
