package service

import (
	"fmt"
	"math/rand"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

const defaultOptionCount = 4

// QuestionGenerator builds multiple-choice questions from content items.
// Every vocabulary item yields two question kinds: the translation question
// (Italian translation -> article + singular) and the plural question
// (singular -> plural form). Grammar topics contribute their authored
// exercises as-is, with shuffled option order.
//
// The random source is injected so tests can pin the shuffle.
type QuestionGenerator struct {
	optionCount int
	rng         *rand.Rand
}

// NewQuestionGenerator creates a generator producing questions with up to
// optionCount options (correct answer included). Values below 2 fall back to
// the default of 4.
func NewQuestionGenerator(optionCount int, rng *rand.Rand) *QuestionGenerator {
	if optionCount < 2 {
		optionCount = defaultOptionCount
	}
	return &QuestionGenerator{
		optionCount: optionCount,
		rng:         rng,
	}
}

// LevelQuestions builds the question sequence for a level attempt: both
// question kinds for every new vocabulary item plus all grammar exercises,
// shuffled. Distractors come from the level's own items first and fall back
// to the already learned pool when the level is too small.
func (g *QuestionGenerator) LevelQuestions(level *entities.Level, learnedPool []entities.VocabularyItem) []entities.Question {
	pool := make([]entities.VocabularyItem, 0, len(level.Vocabulary)+len(learnedPool))
	pool = append(pool, level.Vocabulary...)
	pool = append(pool, learnedPool...)

	questions := make([]entities.Question, 0, 2*len(level.Vocabulary))
	for _, item := range level.Vocabulary {
		questions = append(questions, g.translationQuestion(item, pool))
		questions = append(questions, g.pluralQuestion(item, pool))
	}
	for _, topic := range level.Grammar {
		questions = append(questions, g.grammarQuestions(topic)...)
	}

	g.shuffle(questions)
	return questions
}

// ReviewQuestions builds a review sequence from the learned content: one
// randomly chosen question kind per learned vocabulary item plus the
// exercises of every learned grammar topic, shuffled. Each item appears at
// most once, so the draw is without replacement.
func (g *QuestionGenerator) ReviewQuestions(vocabulary []entities.VocabularyItem, topics []entities.GrammarTopic) []entities.Question {
	questions := make([]entities.Question, 0, len(vocabulary))
	for _, item := range vocabulary {
		if g.rng.Intn(2) == 0 {
			questions = append(questions, g.translationQuestion(item, vocabulary))
		} else {
			questions = append(questions, g.pluralQuestion(item, vocabulary))
		}
	}
	for _, topic := range topics {
		questions = append(questions, g.grammarQuestions(topic)...)
	}

	g.shuffle(questions)
	return questions
}

func (g *QuestionGenerator) translationQuestion(item entities.VocabularyItem, pool []entities.VocabularyItem) entities.Question {
	correct := item.WithArticle()
	distractors := g.distractors(pool, item.ID(), correct, func(v entities.VocabularyItem) string {
		return v.WithArticle()
	})
	options, correctIndex := g.buildOptions(correct, distractors)

	return entities.Question{
		ItemID:        item.ID(),
		Kind:          entities.QuestionTranslation,
		Prompt:        fmt.Sprintf("Scegli il termine tedesco corretto per '%s':", item.Translation),
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: correct,
		Explanation:   item.Explanation,
	}
}

func (g *QuestionGenerator) pluralQuestion(item entities.VocabularyItem, pool []entities.VocabularyItem) entities.Question {
	correct := item.PluralForm()
	distractors := g.distractors(pool, item.ID(), correct, func(v entities.VocabularyItem) string {
		return v.PluralForm()
	})
	options, correctIndex := g.buildOptions(correct, distractors)

	return entities.Question{
		ItemID:        item.ID(),
		Kind:          entities.QuestionPlural,
		Prompt:        fmt.Sprintf("Qual è il plurale corretto di '%s'?", item.WithArticle()),
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: correct,
		Explanation:   item.Explanation,
	}
}

func (g *QuestionGenerator) grammarQuestions(topic entities.GrammarTopic) []entities.Question {
	questions := make([]entities.Question, 0, len(topic.Questions))
	for _, q := range topic.Questions {
		options := append([]string(nil), q.Options...)
		g.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		correctIndex := 0
		for i, opt := range options {
			if opt == q.Answer {
				correctIndex = i
				break
			}
		}

		questions = append(questions, entities.Question{
			ItemID:        topic.ID(),
			Kind:          entities.QuestionGrammar,
			Prompt:        q.Prompt,
			Options:       options,
			CorrectIndex:  correctIndex,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
		})
	}
	return questions
}

// distractors picks up to optionCount-1 wrong options from the pool. No
// distractor may be string-identical to the correct answer or to another
// distractor.
func (g *QuestionGenerator) distractors(pool []entities.VocabularyItem, excludeID, correct string, form func(entities.VocabularyItem) string) []string {
	candidates := make([]entities.VocabularyItem, 0, len(pool))
	seenIDs := map[string]bool{excludeID: true}
	for _, item := range pool {
		if seenIDs[item.ID()] {
			continue
		}
		seenIDs[item.ID()] = true
		candidates = append(candidates, item)
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	want := g.optionCount - 1
	picked := make([]string, 0, want)
	seen := map[string]bool{correct: true}
	for _, candidate := range candidates {
		if len(picked) >= want {
			break
		}
		text := form(candidate)
		if seen[text] {
			continue
		}
		seen[text] = true
		picked = append(picked, text)
	}

	return picked
}

// buildOptions places the correct answer among the distractors at a random
// position and returns the options with the index of the correct one.
func (g *QuestionGenerator) buildOptions(correct string, distractors []string) ([]string, int) {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}

func (g *QuestionGenerator) shuffle(questions []entities.Question) {
	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
