package cli

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
	"github.com/deutschlern/lagertrainer/internal/service"
)

type stubLevels struct {
	levels []entities.Level
}

func (s *stubLevels) GetByNumber(number int) (*entities.Level, error) {
	for i := range s.levels {
		if s.levels[i].Number == number {
			return &s.levels[i], nil
		}
	}
	return nil, service.ErrNoSuchLevel
}

func (s *stubLevels) MaxLevel() int {
	return len(s.levels)
}

func (s *stubLevels) AllVocabulary() []entities.VocabularyItem {
	var items []entities.VocabularyItem
	for _, level := range s.levels {
		items = append(items, level.Vocabulary...)
	}
	return items
}

func (s *stubLevels) AllGrammar() []entities.GrammarTopic {
	var topics []entities.GrammarTopic
	for _, level := range s.levels {
		topics = append(topics, level.Grammar...)
	}
	return topics
}

// recordingStore hands out a fixed progress state and counts saves.
type recordingStore struct {
	progress *entities.Progress
	saves    int
}

func (s *recordingStore) Load(_ context.Context, _ int64) (*entities.Progress, error) {
	return s.progress, nil
}

func (s *recordingStore) Save(_ context.Context, _ int64, _ *entities.Progress) error {
	s.saves++
	return nil
}

func newTestGame(t *testing.T, progress *entities.Progress, input string) (*Game, *recordingStore) {
	t.Helper()

	levels := &stubLevels{levels: []entities.Level{
		{Number: 1, Vocabulary: []entities.VocabularyItem{
			{Level: 1, Singular: "Gabelstapler", Article: entities.ArticleDer, Plural: "Gabelstapler", Translation: "muletto"},
			{Level: 1, Singular: "Lager", Article: entities.ArticleDas, Plural: "Lager", Translation: "magazzino"},
			{Level: 1, Singular: "Palette", Article: entities.ArticleDie, Plural: "Paletten", Translation: "pallet"},
			{Level: 1, Singular: "Regal", Article: entities.ArticleDas, Plural: "Regale", Translation: "scaffale"},
		}},
	}}

	generator := service.NewQuestionGenerator(4, rand.New(rand.NewSource(1)))
	engine := service.NewEngine(levels, generator, 0.8, zap.NewNop())

	store := &recordingStore{progress: progress}
	game := New(engine, levels, store, zap.NewNop(), strings.NewReader(input), &bytes.Buffer{})
	return game, store
}

func learnedLevelOne(p *entities.Progress) {
	p.MergeLearned([]string{"Gabelstapler", "Lager", "Palette", "Regal"})
}

// Input ends at the first review question: the session is abandoned and must
// leave no trace, in particular the once-daily review stamp.
func TestGame_AbandonedReviewIsNotCommitted(t *testing.T) {
	t.Parallel()

	progress := entities.NewProgress()
	learnedLevelOne(progress)

	game, store := newTestGame(t, progress, "2\n")
	require.NoError(t, game.Run(context.Background()))

	assert.Zero(t, store.saves)
	assert.Empty(t, progress.LastReview)
	assert.Zero(t, progress.Score.Attempted)
}

// Input ends after the first answer of a level attempt: no partial score may
// be recorded and nothing may be saved.
func TestGame_AbandonedLevelIsNotCommitted(t *testing.T) {
	t.Parallel()

	progress := entities.NewProgress()

	// Menu choice 1, ENTER past the intro, one answer, then EOF.
	game, store := newTestGame(t, progress, "1\n\n1\n")
	require.NoError(t, game.Run(context.Background()))

	assert.Zero(t, store.saves)
	assert.Equal(t, 1, progress.CurrentLevel)
	assert.Empty(t, progress.LevelScores)
	assert.Zero(t, progress.Score.Attempted)
}

// A review answered to the end commits: the progress is saved and the review
// counts for today.
func TestGame_CompletedReviewIsCommitted(t *testing.T) {
	t.Parallel()

	progress := entities.NewProgress()
	learnedLevelOne(progress)

	input := "2\n" + strings.Repeat("1\n", 4)
	game, store := newTestGame(t, progress, input)
	require.NoError(t, game.Run(context.Background()))

	assert.Equal(t, 1, store.saves)
	assert.Equal(t, time.Now().Format("2006-01-02"), progress.LastReview)
	assert.Equal(t, 4, progress.Score.Attempted)
}
