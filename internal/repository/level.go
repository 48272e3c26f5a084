package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrEmptyContent  = errors.New("content table is empty")
)

// LevelRepository provides read-only access to the content table: the ordered
// levels with their vocabulary items and grammar topics. Content is loaded
// once from a JSON asset file and kept in memory.
type LevelRepository struct {
	levels []entities.Level
}

// NewLevelRepository loads the content table from the given JSON file.
func NewLevelRepository(path string) (*LevelRepository, error) {
	levels, err := loadLevels(path)
	if err != nil {
		return nil, err
	}

	return &LevelRepository{
		levels: levels,
	}, nil
}

// GetByNumber returns the level at the given 1-based position.
func (r *LevelRepository) GetByNumber(number int) (*entities.Level, error) {
	for i := range r.levels {
		if r.levels[i].Number == number {
			return &r.levels[i], nil
		}
	}

	return nil, fmt.Errorf("level %d: %w", number, ErrLevelNotFound)
}

// GetAll returns all levels in ascending order.
func (r *LevelRepository) GetAll() []entities.Level {
	return r.levels
}

// MaxLevel returns the highest level number in the content table.
func (r *LevelRepository) MaxLevel() int {
	if len(r.levels) == 0 {
		return 0
	}
	return r.levels[len(r.levels)-1].Number
}

// AllVocabulary returns every vocabulary item across all levels, in content
// order. Used for review sampling and distractor fallback pools.
func (r *LevelRepository) AllVocabulary() []entities.VocabularyItem {
	var items []entities.VocabularyItem
	for _, level := range r.levels {
		items = append(items, level.Vocabulary...)
	}
	return items
}

// AllGrammar returns every grammar topic across all levels, in content order.
func (r *LevelRepository) AllGrammar() []entities.GrammarTopic {
	var topics []entities.GrammarTopic
	for _, level := range r.levels {
		topics = append(topics, level.Grammar...)
	}
	return topics
}

func loadLevels(path string) ([]entities.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	var wrapper struct {
		Vocabulary []entities.VocabularyItem `json:"vocabulary"`
		Grammar    []entities.GrammarTopic   `json:"grammar"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content JSON: %w", err)
	}

	byNumber := map[int]*entities.Level{}
	for _, item := range wrapper.Vocabulary {
		if item.Level < 1 {
			return nil, fmt.Errorf("vocabulary item %q has invalid level %d", item.Singular, item.Level)
		}
		levelOf(byNumber, item.Level).Vocabulary = append(levelOf(byNumber, item.Level).Vocabulary, item)
	}
	for _, topic := range wrapper.Grammar {
		if topic.Level < 1 {
			return nil, fmt.Errorf("grammar topic %q has invalid level %d", topic.Name, topic.Level)
		}
		levelOf(byNumber, topic.Level).Grammar = append(levelOf(byNumber, topic.Level).Grammar, topic)
	}

	if len(byNumber) == 0 {
		return nil, ErrEmptyContent
	}

	levels := make([]entities.Level, 0, len(byNumber))
	for _, level := range byNumber {
		levels = append(levels, *level)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Number < levels[j].Number })

	// Every level up to the highest must introduce something, otherwise the
	// frontier could never pass the gap.
	for i, level := range levels {
		if level.Number != i+1 {
			return nil, fmt.Errorf("content table has a gap: expected level %d, got %d", i+1, level.Number)
		}
	}

	return levels, nil
}

func levelOf(byNumber map[int]*entities.Level, number int) *entities.Level {
	if l, ok := byNumber[number]; ok {
		return l
	}
	l := &entities.Level{Number: number}
	byNumber[number] = l
	return l
}
