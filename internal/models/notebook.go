package models

import "time"

// NotebookEntry is one mistake-book entry: a word the user answered HARD,
// kept for focused revision.
type NotebookEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	WordRecordID int64     `json:"word_record_id"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// NotebookEntryDetail joins an entry with its word for display.
type NotebookEntryDetail struct {
	NotebookEntry
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Difficulty int    `json:"difficulty"`
}
