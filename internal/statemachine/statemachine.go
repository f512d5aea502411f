// Package statemachine holds the learning-state transition table.
//
// States progress NEW → LEARNING → REVIEW → MASTERED on good answers and
// fall back toward LEARNING on bad ones. The table is total over the four
// states and the three real answers.
package statemachine

import (
	"errors"

	"github.com/junyi/vocabflash/internal/models"
)

var (
	// ErrInvalidFeedback is returned for feedback that is not a real answer.
	ErrInvalidFeedback = errors.New("statemachine: feedback is not a valid answer")
	// ErrUnknownState is returned for a state outside the four known states.
	ErrUnknownState = errors.New("statemachine: unknown word state")
)

// transitions is pure data, one row per current state.
var transitions = map[models.WordState]map[models.MemoryStatus]models.WordState{
	models.StateNew: {
		models.StatusEasy:   models.StateLearning,
		models.StatusMedium: models.StateLearning,
		models.StatusHard:   models.StateLearning,
	},
	models.StateLearning: {
		models.StatusEasy:   models.StateReview,
		models.StatusMedium: models.StateLearning,
		models.StatusHard:   models.StateLearning,
	},
	models.StateReview: {
		models.StatusEasy:   models.StateMastered,
		models.StatusMedium: models.StateReview,
		models.StatusHard:   models.StateLearning,
	},
	models.StateMastered: {
		models.StatusEasy:   models.StateMastered,
		models.StatusMedium: models.StateReview,
		models.StatusHard:   models.StateLearning,
	},
}

// Next returns the successor state for an observed answer. UNKNOWN feedback
// represents "not yet answered" and is rejected.
func Next(current models.WordState, feedback models.MemoryStatus) (models.WordState, error) {
	row, ok := transitions[current]
	if !ok {
		return "", ErrUnknownState
	}
	next, ok := row[feedback]
	if !ok {
		return "", ErrInvalidFeedback
	}
	return next, nil
}
