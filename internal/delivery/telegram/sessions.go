package telegram

import (
	"sync"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

// activeSession is one learner's quiz in flight: the engine session, the
// progress snapshot it will be applied to, and the index of the question
// currently on screen.
type activeSession struct {
	userID   int64
	progress *entities.Progress
	session  *entities.Session
	index    int
}

func (a *activeSession) current() *entities.Question {
	if a.index >= len(a.session.Questions) {
		return nil
	}
	return &a.session.Questions[a.index]
}

// sessionRegistry keeps at most one active quiz per chat. Starting a new one
// replaces the old, which is discarded unfinished (nothing of it persists).
type sessionRegistry struct {
	mu     sync.Mutex
	byChat map[int64]*activeSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{byChat: map[int64]*activeSession{}}
}

func (r *sessionRegistry) get(chatID int64) (*activeSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byChat[chatID]
	return s, ok
}

func (r *sessionRegistry) put(chatID int64, s *activeSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byChat[chatID] = s
}

func (r *sessionRegistry) remove(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byChat, chatID)
}
