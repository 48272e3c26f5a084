package entities

import (
	"strconv"
	"time"
)

// reviewDateLayout is the calendar-day format of the persisted last_review
// field. Review gating works on whole days, never on times.
const reviewDateLayout = "2006-01-02"

// Score is a cumulative correct/attempted tally across all completed
// sessions.
type Score struct {
	Correct   int `json:"correct"`
	Attempted int `json:"attempted"`
}

// Progress is the durable learner state: the level frontier, the cumulative
// score, the learned-set, the per-level percent history and the date of the
// last counted review. It is the sole persisted artifact of the game and is
// mutated only through the session engine.
type Progress struct {
	CurrentLevel int            `json:"current_level"`
	Score        Score          `json:"score"`
	LearnedItems []string       `json:"learned_items"`
	LevelScores  map[string]int `json:"scores,omitempty"`
	LastReview   string         `json:"last_review,omitempty"`
}

// NewProgress returns the fresh-player state: level 1 unlocked, nothing
// learned, no review yet.
func NewProgress() *Progress {
	return &Progress{
		CurrentLevel: 1,
		LearnedItems: []string{},
		LevelScores:  map[string]int{},
	}
}

// Normalize repairs a state loaded from an older or hand-edited record so the
// invariants hold: the frontier is at least 1 and the collections are non-nil.
func (p *Progress) Normalize() {
	if p.CurrentLevel < 1 {
		p.CurrentLevel = 1
	}
	if p.LearnedItems == nil {
		p.LearnedItems = []string{}
	}
	if p.LevelScores == nil {
		p.LevelScores = map[string]int{}
	}
	if p.Score.Correct < 0 {
		p.Score.Correct = 0
	}
	if p.Score.Attempted < p.Score.Correct {
		p.Score.Attempted = p.Score.Correct
	}
}

// HasLearned reports whether the identifier is in the learned-set.
func (p *Progress) HasLearned(id string) bool {
	for _, learned := range p.LearnedItems {
		if learned == id {
			return true
		}
	}
	return false
}

// MergeLearned adds the identifiers to the learned-set, keeping it free of
// duplicates. Items are never removed: the learned-set only grows.
func (p *Progress) MergeLearned(ids []string) {
	for _, id := range ids {
		if !p.HasLearned(id) {
			p.LearnedItems = append(p.LearnedItems, id)
		}
	}
}

// SetLevelScore records the percent scored on a level attempt, overwriting
// any earlier attempt of the same level.
func (p *Progress) SetLevelScore(level, percent int) {
	if p.LevelScores == nil {
		p.LevelScores = map[string]int{}
	}
	p.LevelScores[strconv.Itoa(level)] = percent
}

// ReviewedOn reports whether a counted review already happened on the given
// calendar day.
func (p *Progress) ReviewedOn(day time.Time) bool {
	return p.LastReview != "" && p.LastReview == day.Format(reviewDateLayout)
}

// MarkReviewed stamps the given day as the last counted review.
func (p *Progress) MarkReviewed(day time.Time) {
	p.LastReview = day.Format(reviewDateLayout)
}

// Accuracy returns the cumulative all-time accuracy, 0 before any answer.
func (p *Progress) Accuracy() float64 {
	if p.Score.Attempted == 0 {
		return 0
	}
	return float64(p.Score.Correct) / float64(p.Score.Attempted)
}
