package models

import "time"

// User is a learner profile. Rating is an Elo-style skill estimate; it is
// not clamped anywhere, though in practice it stabilizes near [0, 3000].
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Level     string    `json:"level"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
