package models

import (
	"fmt"
	"time"
)

// MemoryStatus is the feedback a user gives after seeing a word.
// UNKNOWN means the word has never been answered; it is not itself an answer.
type MemoryStatus string

const (
	StatusUnknown MemoryStatus = "unknown"
	StatusEasy    MemoryStatus = "easy"
	StatusMedium  MemoryStatus = "medium"
	StatusHard    MemoryStatus = "hard"
)

// ParseMemoryStatus converts a string into a MemoryStatus.
func ParseMemoryStatus(s string) (MemoryStatus, error) {
	switch MemoryStatus(s) {
	case StatusUnknown, StatusEasy, StatusMedium, StatusHard:
		return MemoryStatus(s), nil
	}
	return "", fmt.Errorf("invalid memory status: %q", s)
}

// IsAnswer reports whether the status is a real answer (not UNKNOWN).
func (m MemoryStatus) IsAnswer() bool {
	return m == StatusEasy || m == StatusMedium || m == StatusHard
}

// IsCorrect reports whether the answer counts as a success.
// EASY and MEDIUM are successes; HARD is a failure.
func (m MemoryStatus) IsCorrect() bool {
	return m == StatusEasy || m == StatusMedium
}

// WordState is the discrete learning state of a word for a user.
type WordState string

const (
	StateNew      WordState = "new"
	StateLearning WordState = "learning"
	StateReview   WordState = "review"
	StateMastered WordState = "mastered"
)

// ParseWordState converts a string into a WordState.
func ParseWordState(s string) (WordState, error) {
	switch WordState(s) {
	case StateNew, StateLearning, StateReview, StateMastered:
		return WordState(s), nil
	}
	return "", fmt.Errorf("invalid word state: %q", s)
}

// WordRecord tracks one user's learning progress for one vocabulary word.
// NextReview is nil until the word has been scheduled at least once; a record
// with nil NextReview is a "new" word by definition.
type WordRecord struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"user_id"`
	VocabularyID int64        `json:"vocabulary_id"`
	Status       MemoryStatus `json:"status"`
	Easiness     float64      `json:"easiness"`
	Interval     int          `json:"interval"`
	Repetitions  int          `json:"repetitions"`
	NextReview   *time.Time   `json:"next_review"`
	LastReview   *time.Time   `json:"last_review"`
	State        WordState    `json:"state"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewWordRecord returns a fresh record for a word the user has never seen.
func NewWordRecord(userID, vocabularyID int64) WordRecord {
	return WordRecord{
		UserID:       userID,
		VocabularyID: vocabularyID,
		Status:       StatusUnknown,
		Easiness:     2.5,
		Interval:     0,
		Repetitions:  0,
		State:        StateNew,
	}
}

// IsNew reports whether the word has never been scheduled.
func (r WordRecord) IsNew() bool {
	return r.NextReview == nil
}
