package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelRepository(t *testing.T) {
	t.Parallel()

	repo, err := NewLevelRepository(filepath.Join("testdata", "levels.json"))
	require.NoError(t, err)

	assert.Equal(t, 2, repo.MaxLevel())

	level1, err := repo.GetByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, 1, level1.Number)
	assert.Len(t, level1.Vocabulary, 2)
	assert.Empty(t, level1.Grammar)

	level2, err := repo.GetByNumber(2)
	require.NoError(t, err)
	assert.Len(t, level2.Vocabulary, 1)
	require.Len(t, level2.Grammar, 1)
	assert.Equal(t, "Articoli indeterminativi", level2.Grammar[0].Name)

	_, err = repo.GetByNumber(3)
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestNewLevelRepository_AllContent(t *testing.T) {
	t.Parallel()

	repo, err := NewLevelRepository(filepath.Join("testdata", "levels.json"))
	require.NoError(t, err)

	vocabulary := repo.AllVocabulary()
	require.Len(t, vocabulary, 3)
	assert.Equal(t, "Lager", vocabulary[0].Singular)
	assert.Equal(t, "Kiste", vocabulary[2].Singular)

	topics := repo.AllGrammar()
	require.Len(t, topics, 1)
	assert.Equal(t, 2, topics[0].Level)
}

func TestNewLevelRepository_Errors(t *testing.T) {
	t.Parallel()

	writeContent := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "levels.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name: "missing file",
			path: filepath.Join(t.TempDir(), "nope.json"),
		},
		{
			name: "invalid json",
			path: writeContent(t, "{not json"),
		},
		{
			name:    "empty content",
			path:    writeContent(t, `{"vocabulary": [], "grammar": []}`),
			wantErr: ErrEmptyContent,
		},
		{
			name: "gap between levels",
			path: writeContent(t, `{"vocabulary": [
				{"level": 1, "singular": "Lager", "article": "das", "plural": "Lager", "translation": "magazzino"},
				{"level": 3, "singular": "Kiste", "article": "die", "plural": "Kisten", "translation": "cassetta"}
			]}`),
		},
		{
			name: "invalid level number",
			path: writeContent(t, `{"vocabulary": [
				{"level": 0, "singular": "Lager", "article": "das", "plural": "Lager", "translation": "magazzino"}
			]}`),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewLevelRepository(tt.path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
