package models

import "time"

// StudySession is one sitting of study, used for correct-rate bookkeeping.
type StudySession struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	WordsStudied int        `json:"words_studied"`
	CorrectCount int        `json:"correct_count"`
	CorrectRate  float64    `json:"correct_rate"`
}

// IsOngoing reports whether the session has not been ended yet.
func (s StudySession) IsOngoing() bool {
	return s.EndTime == nil
}
