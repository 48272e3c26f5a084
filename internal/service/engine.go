package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

var (
	ErrLevelLocked     = errors.New("level locked")
	ErrNoSuchLevel     = errors.New("no such level")
	ErrNothingToReview = errors.New("nothing to review")
)

// defaultPassThreshold is the accuracy required to pass a level.
const defaultPassThreshold = 0.8

// LevelRepo is the content table as the engine sees it.
type LevelRepo interface {
	GetByNumber(number int) (*entities.Level, error)
	MaxLevel() int
	AllVocabulary() []entities.VocabularyItem
	AllGrammar() []entities.GrammarTopic
}

// ProgressStore persists learner state. userID distinguishes learners in
// multi-user deployments; the file store ignores it.
type ProgressStore interface {
	Load(ctx context.Context, userID int64) (*entities.Progress, error)
	Save(ctx context.Context, userID int64, progress *entities.Progress) error
}

// AnswerResult is what the presentation layer shows after one answer.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
}

// SessionResult summarizes a finished session.
type SessionResult struct {
	Mode     entities.SessionMode
	Level    int
	Accuracy float64
	Passed   bool // level attempts only
	Advanced bool // frontier moved by this session
	Counted  bool // review sessions: this run refreshed last_review
}

// Engine runs quiz sessions against an explicit progress state. It owns the
// scoring policy and the level-advance decision; persistence is left to the
// caller so sessions and tests stay independent.
type Engine struct {
	levels        LevelRepo
	generator     *QuestionGenerator
	passThreshold float64
	logger        *zap.Logger
}

// NewEngine creates a session engine. A passThreshold outside (0, 1] falls
// back to the default of 0.8.
func NewEngine(levels LevelRepo, generator *QuestionGenerator, passThreshold float64, logger *zap.Logger) *Engine {
	if passThreshold <= 0 || passThreshold > 1 {
		passThreshold = defaultPassThreshold
	}
	return &Engine{
		levels:        levels,
		generator:     generator,
		passThreshold: passThreshold,
		logger:        logger,
	}
}

// StartLevel draws the question sequence for a level attempt. The level must
// exist and be unlocked (number <= the learner's frontier). Every item the
// level introduces appears in the sequence.
func (e *Engine) StartLevel(progress *entities.Progress, number int) (*entities.Session, error) {
	if number < 1 || number > e.levels.MaxLevel() {
		return nil, fmt.Errorf("level %d: %w", number, ErrNoSuchLevel)
	}
	if number > progress.CurrentLevel {
		return nil, fmt.Errorf("level %d: %w", number, ErrLevelLocked)
	}

	level, err := e.levels.GetByNumber(number)
	if err != nil {
		return nil, err
	}

	questions := e.generator.LevelQuestions(level, e.learnedVocabulary(progress))
	if len(questions) == 0 {
		return nil, fmt.Errorf("level %d: %w", number, ErrNoSuchLevel)
	}

	e.logger.Debug("level session started",
		zap.Int("level", number),
		zap.Int("questions", len(questions)),
	)

	return &entities.Session{
		Mode:      entities.ModeLevel,
		Level:     number,
		Questions: questions,
	}, nil
}

// StartReview draws an independent random sample over the whole learned-set:
// every learned vocabulary item once (kind chosen at random) plus the
// exercises of every learned grammar topic. Fails when nothing has been
// learned yet. The once-per-day accounting happens in Finish, so a same-day
// rerun is always possible for practice.
func (e *Engine) StartReview(progress *entities.Progress) (*entities.Session, error) {
	if len(progress.LearnedItems) == 0 {
		return nil, ErrNothingToReview
	}

	vocabulary := e.learnedVocabulary(progress)
	topics := e.learnedGrammar(progress)

	questions := e.generator.ReviewQuestions(vocabulary, topics)
	if len(questions) == 0 {
		return nil, ErrNothingToReview
	}

	e.logger.Debug("review session started", zap.Int("questions", len(questions)))

	return &entities.Session{
		Mode:      entities.ModeReview,
		Questions: questions,
	}, nil
}

// Answer scores one selection against the question's canonical German form
// (exact string match) and updates the session tally.
func (e *Engine) Answer(session *entities.Session, question *entities.Question, selection string) AnswerResult {
	correct := selection == question.CorrectAnswer
	session.RecordAnswer(correct)

	return AnswerResult{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}
}

// Finish closes a session and applies its outcome to the progress state.
// Level attempts at or above the pass threshold merge the level's items into
// the learned-set and, when the attempted level is the current frontier,
// advance it by one. Failed attempts leave the frontier untouched. Review
// sessions only refresh last_review, at most once per calendar day.
//
// Finish mutates progress but does not persist it; the caller hands the
// result to a ProgressStore.
func (e *Engine) Finish(session *entities.Session, progress *entities.Progress, now time.Time) SessionResult {
	accuracy := session.Accuracy()
	progress.Score.Correct += session.Correct
	progress.Score.Attempted += session.Attempted

	result := SessionResult{
		Mode:     session.Mode,
		Level:    session.Level,
		Accuracy: accuracy,
	}

	switch session.Mode {
	case entities.ModeLevel:
		progress.SetLevelScore(session.Level, int(accuracy*100))

		if accuracy >= e.passThreshold {
			result.Passed = true
			if level, err := e.levels.GetByNumber(session.Level); err == nil {
				progress.MergeLearned(level.ItemIDs())
			}
			if progress.CurrentLevel == session.Level {
				progress.CurrentLevel++
				result.Advanced = true
			}
		}

		e.logger.Info("level session finished",
			zap.Int("level", session.Level),
			zap.Float64("accuracy", accuracy),
			zap.Bool("passed", result.Passed),
		)

	case entities.ModeReview:
		if !progress.ReviewedOn(now) {
			progress.MarkReviewed(now)
			result.Counted = true
		}

		e.logger.Info("review session finished",
			zap.Float64("accuracy", accuracy),
			zap.Bool("counted", result.Counted),
		)
	}

	return result
}

// Completed reports whether the learner has passed every level in the
// content table. Review stays available afterwards.
func (e *Engine) Completed(progress *entities.Progress) bool {
	return progress.CurrentLevel > e.levels.MaxLevel()
}

func (e *Engine) learnedVocabulary(progress *entities.Progress) []entities.VocabularyItem {
	var items []entities.VocabularyItem
	for _, item := range e.levels.AllVocabulary() {
		if progress.HasLearned(item.ID()) {
			items = append(items, item)
		}
	}
	return items
}

func (e *Engine) learnedGrammar(progress *entities.Progress) []entities.GrammarTopic {
	var topics []entities.GrammarTopic
	for _, topic := range e.levels.AllGrammar() {
		if progress.HasLearned(topic.ID()) {
			topics = append(topics, topic)
		}
	}
	return topics
}
