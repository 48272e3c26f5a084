package entities

// SessionMode distinguishes a level attempt from a review run. Only level
// attempts can advance the frontier; only reviews touch last_review.
type SessionMode string

const (
	ModeLevel  SessionMode = "level"
	ModeReview SessionMode = "review"
)

// Session is the in-memory state of one quiz run: the drawn questions and the
// running tally. A session that is abandoned before Finish is simply
// discarded, nothing of it is persisted.
type Session struct {
	Mode      SessionMode
	Level     int // 0 for review sessions
	Questions []Question
	Correct   int
	Attempted int
}

// RecordAnswer adds one answer to the tally.
func (s *Session) RecordAnswer(correct bool) {
	s.Attempted++
	if correct {
		s.Correct++
	}
}

// Accuracy returns the session accuracy so far, 0 before any answer.
func (s *Session) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}
