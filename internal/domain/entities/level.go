package entities

// LevelStatus describes a level relative to the learner's current frontier.
type LevelStatus string

const (
	LevelLocked    LevelStatus = "locked"
	LevelAvailable LevelStatus = "available"
	LevelPassed    LevelStatus = "passed"
)

// Level groups the vocabulary items and grammar topics introduced at one
// ordered position of the content table. Levels are static configuration and
// never mutated.
type Level struct {
	Number     int
	Vocabulary []VocabularyItem
	Grammar    []GrammarTopic
}

// Status reports the level's state for a learner whose frontier is current:
// levels below the frontier are passed, the frontier itself is available,
// everything beyond is locked. Passed levels stay replayable.
func (l Level) Status(current int) LevelStatus {
	switch {
	case l.Number < current:
		return LevelPassed
	case l.Number == current:
		return LevelAvailable
	default:
		return LevelLocked
	}
}

// ItemIDs returns the identifiers of everything the level introduces, in
// content order. These are the identifiers merged into the learned-set when
// the level is passed.
func (l Level) ItemIDs() []string {
	ids := make([]string, 0, len(l.Vocabulary)+len(l.Grammar))
	for _, v := range l.Vocabulary {
		ids = append(ids, v.ID())
	}
	for _, t := range l.Grammar {
		ids = append(ids, t.ID())
	}
	return ids
}
