package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

func TestFileProgressStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := NewFileProgressStore(filepath.Join(t.TempDir(), "progress.json"))

	progress, err := store.Load(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, entities.NewProgress(), progress)
}

func TestFileProgressStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "definitely not json"},
		{name: "wrong shape", content: `[1, 2, 3]`},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "progress.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			store := NewFileProgressStore(path)
			progress, err := store.Load(context.Background(), 0)
			require.NoError(t, err)
			assert.Equal(t, entities.NewProgress(), progress)
		})
	}
}

func TestFileProgressStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewFileProgressStore(path)
	ctx := context.Background()

	state := entities.NewProgress()
	state.CurrentLevel = 3
	state.Score = entities.Score{Correct: 17, Attempted: 20}
	state.MergeLearned([]string{"Lager", "Palette", "grammatik:Articoli indeterminativi"})
	state.SetLevelScore(1, 100)
	state.SetLevelScore(2, 85)
	state.MarkReviewed(time.Date(2024, 5, 12, 14, 30, 0, 0, time.UTC))

	require.NoError(t, store.Save(ctx, 0, state))

	loaded, err := store.Load(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestFileProgressStore_LoadIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewFileProgressStore(path)
	ctx := context.Background()

	state := entities.NewProgress()
	state.CurrentLevel = 2
	state.MergeLearned([]string{"Lager"})
	require.NoError(t, store.Save(ctx, 0, state))

	first, err := store.Load(ctx, 0)
	require.NoError(t, err)
	second, err := store.Load(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFileProgressStore_SaveOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewFileProgressStore(path)
	ctx := context.Background()

	first := entities.NewProgress()
	first.CurrentLevel = 2
	require.NoError(t, store.Save(ctx, 0, first))

	second := entities.NewProgress()
	second.CurrentLevel = 3
	second.MergeLearned([]string{"Kiste"})
	require.NoError(t, store.Save(ctx, 0, second))

	loaded, err := store.Load(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)

	// No temp files may survive a successful save.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestFileProgressStore_SaveCreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "progress.json")
	store := NewFileProgressStore(path)

	require.NoError(t, store.Save(context.Background(), 0, entities.NewProgress()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileProgressStore_LoadRepairsState(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"current_level": 0}`), 0o644))

	store := NewFileProgressStore(path)
	progress, err := store.Load(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, progress.CurrentLevel)
	assert.NotNil(t, progress.LearnedItems)
	assert.NotNil(t, progress.LevelScores)
}
