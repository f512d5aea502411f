package models

// UserStats summarizes a user's learning progress.
type UserStats struct {
	TotalStudied          int     `json:"total_studied"`
	Mastered              int     `json:"mastered"`
	Learning              int     `json:"learning"`
	DueForReview          int     `json:"due_for_review"`
	CorrectRate           float64 `json:"correct_rate"`
	Rating                float64 `json:"rating"`
	RecommendedDifficulty int     `json:"recommended_difficulty"`
	PerformanceLevel      string  `json:"performance_level"`
}
