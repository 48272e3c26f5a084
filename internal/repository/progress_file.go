package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

// FileProgressStore persists the learner state as a single JSON file, one per
// installation. The userID parameter of the store contract is ignored here:
// the terminal game is single-player by construction.
type FileProgressStore struct {
	path string
}

// NewFileProgressStore creates a store writing to the given path.
func NewFileProgressStore(path string) *FileProgressStore {
	return &FileProgressStore{path: path}
}

// Load reads the persisted state. A missing, unreadable or malformed file is
// treated as a new player and yields the default state; Load never fails.
func (s *FileProgressStore) Load(_ context.Context, _ int64) (*entities.Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return entities.NewProgress(), nil
	}

	var progress entities.Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return entities.NewProgress(), nil
	}

	progress.Normalize()
	return &progress, nil
}

// Save atomically replaces the persisted state with the full current state.
// The state is written to a temporary file in the same directory and renamed
// over the old record, so a crash mid-write never leaves a partial file.
func (s *FileProgressStore) Save(_ context.Context, _ int64, progress *entities.Progress) error {
	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace progress file: %w", err)
	}

	return nil
}
