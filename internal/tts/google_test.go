package tts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledWithoutKey(t *testing.T) {
	t.Parallel()

	cacheDir := filepath.Join(t.TempDir(), "cache")

	client, err := NewClient("", cacheDir)
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// A disabled client must not touch the filesystem.
	_, err = os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(err))

	_, err = client.Synthesize("der Gabelstapler")
	assert.Error(t, err)
}

func TestNewClient_CreatesCacheDir(t *testing.T) {
	t.Parallel()

	cacheDir := filepath.Join(t.TempDir(), "nested", "cache")

	client, err := NewClient("some-key", cacheDir)
	require.NoError(t, err)
	assert.True(t, client.Enabled())

	info, err := os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewClient_CacheDirError(t *testing.T) {
	t.Parallel()

	// A regular file where the cache directory should go makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewClient("some-key", filepath.Join(blocker, "cache"))
	assert.Error(t, err)
}

func TestClient_CacheKeyIsStable(t *testing.T) {
	t.Parallel()

	client, err := NewClient("some-key", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, client.cacheKey("die Palette"), client.cacheKey("die Palette"))
	assert.NotEqual(t, client.cacheKey("die Palette"), client.cacheKey("die Paletten"))
}
