package srs

import (
	"errors"
	"sort"
	"time"

	"github.com/junyi/vocabflash/internal/models"
)

// ErrInvalidFeedback is returned when a feedback value that is not a real
// answer (EASY/MEDIUM/HARD) is fed into the scheduler.
var ErrInvalidFeedback = errors.New("srs: feedback is not a valid answer")

// Default easiness bounds for the SM-2 variant.
const (
	MinEasiness     = 1.3
	MaxEasiness     = 3.0
	InitialEasiness = 2.5

	firstInterval  = 1 // days
	secondInterval = 6 // days
)

// qualityMap converts feedback into the 0-5 quality scalar the SM-2
// formulas operate on.
var qualityMap = map[models.MemoryStatus]int{
	models.StatusEasy:   5,
	models.StatusMedium: 3,
	models.StatusHard:   1,
}

// Engine implements the SM-2 spaced repetition schedule:
//
//	I(1) = 1, I(2) = 6, I(n) = floor(I(n-1) * EF)
//	EF'  = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), clamped to [1.3, 3.0]
//
// The engine holds only configuration, never mutable state, and never reads
// the clock; callers pass `now` explicitly.
type Engine struct {
	minEasiness float64
	maxEasiness float64
}

// NewEngine returns an Engine with the standard easiness bounds.
func NewEngine() *Engine {
	return &Engine{minEasiness: MinEasiness, maxEasiness: MaxEasiness}
}

// Review is the scheduling outcome of one answered card.
type Review struct {
	Interval    int // days
	Easiness    float64
	Repetitions int
	NextReview  time.Time
}

// Quality maps feedback to its quality scalar: EASY 5, MEDIUM 3, HARD 1.
// Any other value, including UNKNOWN, is a contract violation.
func (e *Engine) Quality(feedback models.MemoryStatus) (int, error) {
	q, ok := qualityMap[feedback]
	if !ok {
		return 0, ErrInvalidFeedback
	}
	return q, nil
}

// ComputeNext calculates the next review schedule for a record given the
// user's feedback. Pure: identical inputs yield identical outputs.
func (e *Engine) ComputeNext(rec models.WordRecord, feedback models.MemoryStatus, now time.Time) (Review, error) {
	quality, err := e.Quality(feedback)
	if err != nil {
		return Review{}, err
	}

	// Easiness is always derived from the old value, never the new one.
	easiness := e.updateEasiness(rec.Easiness, quality)

	var interval int
	switch {
	case quality < 3:
		// Failed recall restarts the ladder.
		interval = firstInterval
	case rec.Repetitions == 0:
		interval = firstInterval
	case rec.Repetitions == 1:
		interval = secondInterval
	default:
		interval = int(float64(rec.Interval) * easiness)
	}

	repetitions := rec.Repetitions + 1
	if quality < 3 {
		repetitions = 0
	}

	return Review{
		Interval:    interval,
		Easiness:    easiness,
		Repetitions: repetitions,
		NextReview:  now.AddDate(0, 0, interval),
	}, nil
}

func (e *Engine) updateEasiness(ef float64, quality int) float64 {
	ef += 0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02)
	if ef < e.minEasiness {
		return e.minEasiness
	}
	if ef > e.maxEasiness {
		return e.maxEasiness
	}
	return ef
}

// DueRecords returns every record whose next review time has passed, sorted
// by due time ascending with record ID as tie-break. limit <= 0 means
// unlimited. Records never scheduled (nil NextReview) are never due.
func (e *Engine) DueRecords(records []models.WordRecord, now time.Time, limit int) []models.WordRecord {
	var due []models.WordRecord
	for _, r := range records {
		if r.NextReview != nil && !r.NextReview.After(now) {
			due = append(due, r)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].NextReview.Equal(*due[j].NextReview) {
			return due[i].ID < due[j].ID
		}
		return due[i].NextReview.Before(*due[j].NextReview)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}

// NewRecords returns records for words never answered (status UNKNOWN),
// preserving input order. limit <= 0 means unlimited.
func (e *Engine) NewRecords(records []models.WordRecord, limit int) []models.WordRecord {
	var fresh []models.WordRecord
	for _, r := range records {
		if r.Status == models.StatusUnknown {
			fresh = append(fresh, r)
			if limit > 0 && len(fresh) == limit {
				break
			}
		}
	}
	return fresh
}

// EstimateLoad forecasts review load: a map from day offset (0 = today) to
// the number of records due on that calendar day.
func (e *Engine) EstimateLoad(records []models.WordRecord, now time.Time, daysAhead int) map[int]int {
	load := make(map[int]int, daysAhead+1)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for day := 0; day <= daysAhead; day++ {
		start := dayStart.AddDate(0, 0, day)
		end := start.AddDate(0, 0, 1)

		count := 0
		for _, r := range records {
			if r.NextReview == nil {
				continue
			}
			if !r.NextReview.Before(start) && r.NextReview.Before(end) {
				count++
			}
		}
		load[day] = count
	}
	return load
}
