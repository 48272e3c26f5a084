package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

const progressDateLayout = "2006-01-02"

// PostgresProgressStore persists learner state per Telegram user. It honors
// the same contract as the file store: a missing row is a new player, and
// Save always writes the whole state.
type PostgresProgressStore struct {
	db *pgxpool.Pool
}

// NewPostgresProgressStore creates a store backed by the given pool.
func NewPostgresProgressStore(db *pgxpool.Pool) *PostgresProgressStore {
	return &PostgresProgressStore{db: db}
}

// Load retrieves the state for a user, or the default state when the user has
// no record yet. Unlike the file store it can fail, since the database may be
// unreachable.
func (s *PostgresProgressStore) Load(ctx context.Context, userID int64) (*entities.Progress, error) {
	query := `
		SELECT current_level, correct_count, attempted_count, learned_items, level_scores, last_review
		FROM learner_progress
		WHERE user_id = $1
	`

	var (
		progress    entities.Progress
		levelScores []byte
		lastReview  *time.Time
	)
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&progress.CurrentLevel,
		&progress.Score.Correct,
		&progress.Score.Attempted,
		&progress.LearnedItems,
		&levelScores,
		&lastReview,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.NewProgress(), nil
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}

	if len(levelScores) > 0 {
		if err := json.Unmarshal(levelScores, &progress.LevelScores); err != nil {
			return nil, fmt.Errorf("unmarshal level scores: %w", err)
		}
	}
	if lastReview != nil {
		progress.LastReview = lastReview.Format(progressDateLayout)
	}

	progress.Normalize()
	return &progress, nil
}

// Save upserts the whole state for a user.
func (s *PostgresProgressStore) Save(ctx context.Context, userID int64, progress *entities.Progress) error {
	levelScores, err := json.Marshal(progress.LevelScores)
	if err != nil {
		return fmt.Errorf("marshal level scores: %w", err)
	}

	var lastReview *time.Time
	if progress.LastReview != "" {
		day, err := time.Parse(progressDateLayout, progress.LastReview)
		if err != nil {
			return fmt.Errorf("parse last review date: %w", err)
		}
		lastReview = &day
	}

	query := `
		INSERT INTO learner_progress (user_id, current_level, correct_count, attempted_count, learned_items, level_scores, last_review, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id)
		DO UPDATE SET
			current_level = excluded.current_level,
			correct_count = excluded.correct_count,
			attempted_count = excluded.attempted_count,
			learned_items = excluded.learned_items,
			level_scores = excluded.level_scores,
			last_review = excluded.last_review,
			updated_at = now()
	`

	_, err = s.db.Exec(
		ctx, query,
		userID,
		progress.CurrentLevel,
		progress.Score.Correct,
		progress.Score.Attempted,
		progress.LearnedItems,
		levelScores,
		lastReview,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	return nil
}
