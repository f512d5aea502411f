package models

// Vocabulary is one dictionary entry. Immutable once imported; the engine
// only reads it.
type Vocabulary struct {
	ID         int64  `json:"id"`
	Word       string `json:"word"`
	Phonetic   string `json:"phonetic"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Difficulty int    `json:"difficulty"` // 1 (easiest) to 10 (hardest)
	Frequency  int    `json:"frequency"`  // frequency rank, >= 1
	Category   string `json:"category"`
}

// ClampDifficulty forces the difficulty into [1, 10].
func ClampDifficulty(d int) int {
	if d < 1 {
		return 1
	}
	if d > 10 {
		return 10
	}
	return d
}

// VocabularyFilter selects vocabularies in list queries.
type VocabularyFilter struct {
	Category      string
	MinDifficulty int
	MaxDifficulty int
	Search        string // substring match on word
	Limit         int
	Offset        int
}
