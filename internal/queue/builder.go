// Package queue assembles a session's study plan: due reviews first, then
// new words picked to match the user's current ability.
package queue

import (
	"math"
	"sort"
	"time"

	"github.com/junyi/vocabflash/internal/elo"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/srs"
)

// Item is one queued card: the record plus its vocabulary entry.
type Item struct {
	Record     models.WordRecord `json:"record"`
	Vocabulary models.Vocabulary `json:"vocabulary"`
	IsNew      bool              `json:"is_new"`
}

// Builder merges due reviews and new-word candidates into one ordered queue.
type Builder struct {
	srs     *srs.Engine
	adapter *elo.Adapter
	target  float64
}

// NewBuilder wires a Builder. target is the success probability new words
// are selected toward; outside (0, 1) it falls back to the adapter default.
func NewBuilder(engine *srs.Engine, adapter *elo.Adapter, target float64) *Builder {
	if target <= 0 || target >= 1 {
		target = adapter.TargetSuccessRate()
	}
	return &Builder{srs: engine, adapter: adapter, target: target}
}

// Build produces the ordered study queue for one user:
//
//  1. due records, earliest first (ties by record ID), capped at maxReview;
//  2. new records ranked by |expectedScore - target| ascending (ties keep
//     input order), capped at maxNew.
//
// Review items always precede new items. Records without a matching
// vocabulary entry are dropped before the caps apply, so a dangling record
// never consumes a slot. Inputs are not mutated.
func (b *Builder) Build(records []models.WordRecord, vocabs map[int64]models.Vocabulary, user models.User, maxNew, maxReview int, now time.Time) []Item {
	due := b.srs.DueRecords(records, now, 0)
	reviews := make([]Item, 0, len(due))
	for _, r := range due {
		v, ok := vocabs[r.VocabularyID]
		if !ok {
			continue
		}
		reviews = append(reviews, Item{Record: r, Vocabulary: v})
		if maxReview > 0 && len(reviews) == maxReview {
			break
		}
	}

	fresh := b.srs.NewRecords(records, 0)
	type candidate struct {
		record   models.WordRecord
		vocab    models.Vocabulary
		distance float64
	}
	candidates := make([]candidate, 0, len(fresh))
	for _, r := range fresh {
		v, ok := vocabs[r.VocabularyID]
		if !ok {
			continue
		}
		score := b.adapter.ExpectedScore(user.Rating, v.Difficulty)
		candidates = append(candidates, candidate{
			record:   r,
			vocab:    v,
			distance: math.Abs(score - b.target),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if maxNew > 0 && len(candidates) > maxNew {
		candidates = candidates[:maxNew]
	}

	items := make([]Item, 0, len(reviews)+len(candidates))
	items = append(items, reviews...)
	for _, c := range candidates {
		items = append(items, Item{Record: c.record, Vocabulary: c.vocab, IsNew: true})
	}
	return items
}
