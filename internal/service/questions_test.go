package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

func testVocabulary() []entities.VocabularyItem {
	return []entities.VocabularyItem{
		{Level: 1, Singular: "Gabelstapler", Article: entities.ArticleDer, Plural: "Gabelstapler", Translation: "muletto", Explanation: "maschile, plurale invariato"},
		{Level: 1, Singular: "Lager", Article: entities.ArticleDas, Plural: "Lager", Translation: "magazzino", Explanation: "neutro, plurale invariato"},
		{Level: 1, Singular: "Palette", Article: entities.ArticleDie, Plural: "Paletten", Translation: "pallet", Explanation: "femminile, plurale in -n"},
		{Level: 1, Singular: "Regal", Article: entities.ArticleDas, Plural: "Regale", Translation: "scaffale", Explanation: "neutro, plurale in -e"},
	}
}

func testGrammarTopic() entities.GrammarTopic {
	return entities.GrammarTopic{
		Level:       1,
		Name:        "Articoli indeterminativi",
		Explanation: "ein per maschile e neutro, eine per femminile.",
		Questions: []entities.GrammarQuestion{
			{
				Prompt:      "Quale articolo indeterminativo usi con 'Palette'?",
				Options:     []string{"ein", "eine", "(nessuno)"},
				Answer:      "eine",
				Explanation: "Palette è femminile.",
			},
		},
	}
}

func TestQuestionGenerator_LevelQuestionsCoverEveryItem(t *testing.T) {
	t.Parallel()

	level := &entities.Level{
		Number:     1,
		Vocabulary: testVocabulary(),
		Grammar:    []entities.GrammarTopic{testGrammarTopic()},
	}

	gen := NewQuestionGenerator(4, rand.New(rand.NewSource(1)))
	questions := gen.LevelQuestions(level, nil)

	// Two questions per vocabulary item plus one grammar exercise.
	require.Len(t, questions, 2*len(level.Vocabulary)+1)

	kindsByItem := map[string]map[entities.QuestionKind]bool{}
	for _, q := range questions {
		if kindsByItem[q.ItemID] == nil {
			kindsByItem[q.ItemID] = map[entities.QuestionKind]bool{}
		}
		kindsByItem[q.ItemID][q.Kind] = true
	}

	for _, item := range level.Vocabulary {
		assert.True(t, kindsByItem[item.ID()][entities.QuestionTranslation], "missing translation question for %s", item.Singular)
		assert.True(t, kindsByItem[item.ID()][entities.QuestionPlural], "missing plural question for %s", item.Singular)
	}
	assert.True(t, kindsByItem[testGrammarTopic().ID()][entities.QuestionGrammar])
}

func TestQuestionGenerator_OptionsAreWellFormed(t *testing.T) {
	t.Parallel()

	level := &entities.Level{Number: 1, Vocabulary: testVocabulary()}

	gen := NewQuestionGenerator(3, rand.New(rand.NewSource(7)))
	questions := gen.LevelQuestions(level, nil)

	for _, q := range questions {
		assert.LessOrEqual(t, len(q.Options), 3)
		assert.GreaterOrEqual(t, len(q.Options), 2)

		require.Less(t, q.CorrectIndex, len(q.Options))
		assert.Equal(t, q.CorrectAnswer, q.Options[q.CorrectIndex])

		seen := map[string]bool{}
		for i, opt := range q.Options {
			assert.False(t, seen[opt], "duplicate option %q", opt)
			seen[opt] = true
			if i != q.CorrectIndex {
				assert.NotEqual(t, q.CorrectAnswer, opt)
			}
		}
	}
}

func TestQuestionGenerator_DistractorsFallBackToLearnedPool(t *testing.T) {
	t.Parallel()

	// A level with a single item has no siblings; distractors must come from
	// the learned pool.
	vocabulary := testVocabulary()
	level := &entities.Level{Number: 2, Vocabulary: vocabulary[:1]}

	gen := NewQuestionGenerator(4, rand.New(rand.NewSource(3)))
	questions := gen.LevelQuestions(level, vocabulary[1:])

	for _, q := range questions {
		assert.Len(t, q.Options, 4, "expected a full option set via the learned pool")
	}
}

func TestQuestionGenerator_GrammarOptionsArePermutation(t *testing.T) {
	t.Parallel()

	topic := testGrammarTopic()
	level := &entities.Level{Number: 1, Grammar: []entities.GrammarTopic{topic}}

	gen := NewQuestionGenerator(4, rand.New(rand.NewSource(11)))
	questions := gen.LevelQuestions(level, nil)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.ElementsMatch(t, topic.Questions[0].Options, q.Options)
	assert.Equal(t, topic.Questions[0].Answer, q.Options[q.CorrectIndex])
}

func TestQuestionGenerator_ReviewQuestionsWithoutReplacement(t *testing.T) {
	t.Parallel()

	vocabulary := testVocabulary()

	gen := NewQuestionGenerator(4, rand.New(rand.NewSource(5)))
	questions := gen.ReviewQuestions(vocabulary, []entities.GrammarTopic{testGrammarTopic()})

	require.Len(t, questions, len(vocabulary)+1)

	seen := map[string]int{}
	for _, q := range questions {
		if q.Kind != entities.QuestionGrammar {
			seen[q.ItemID]++
		}
	}
	for _, item := range vocabulary {
		assert.Equal(t, 1, seen[item.ID()], "item %s must appear exactly once", item.Singular)
	}
}

func TestQuestionGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	level := &entities.Level{Number: 1, Vocabulary: testVocabulary()}

	first := NewQuestionGenerator(4, rand.New(rand.NewSource(42))).LevelQuestions(level, nil)
	second := NewQuestionGenerator(4, rand.New(rand.NewSource(42))).LevelQuestions(level, nil)

	assert.Equal(t, first, second)
}
