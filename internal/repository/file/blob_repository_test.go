package file_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/repository/file"
)

func TestBlobRepository_SetGetDelete(t *testing.T) {
	dir := t.TempDir()
	repo, err := file.NewBlobRepository(dir, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	data, err := repo.Get(ctx, "cfm.catches")
	require.NoError(t, err)
	assert.Nil(t, data, "missing key is a miss, not an error")

	require.NoError(t, repo.Set(ctx, "cfm.catches", []byte(`[{"id":"1"}]`)))

	data, err = repo.Get(ctx, "cfm.catches")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))
	assert.FileExists(t, filepath.Join(dir, "cfm.catches.json"))

	require.NoError(t, repo.Set(ctx, "cfm.catches", []byte(`[]`)))
	data, err = repo.Get(ctx, "cfm.catches")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, repo.Delete(ctx, "cfm.catches"))
	require.NoError(t, repo.Delete(ctx, "cfm.catches"))

	data, err = repo.Get(ctx, "cfm.catches")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestBlobRepository_DeleteMany(t *testing.T) {
	repo, err := file.NewBlobRepository(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "cfm.catches", []byte("[]")))
	require.NoError(t, repo.Set(ctx, "cfm.trips", []byte("[]")))
	require.NoError(t, repo.Set(ctx, "cfm.settings", []byte("{}")))

	require.NoError(t, repo.Delete(ctx, "cfm.catches", "cfm.trips", "cfm.forecast"))

	for _, key := range []string{"cfm.catches", "cfm.trips"} {
		data, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, data, key)
	}
	data, err := repo.Get(ctx, "cfm.settings")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestBlobRepository_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	_, err := file.NewBlobRepository(dir, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBlobRepository_RejectsPathKeys(t *testing.T) {
	repo, err := file.NewBlobRepository(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape", `a\b`, "a/b"} {
		assert.Error(t, repo.Set(ctx, key, []byte("{}")), "key %q", key)
		_, err := repo.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestBlobRepository_ConcurrentWritersLeaveWholeDocument(t *testing.T) {
	repo, err := file.NewBlobRepository(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	docs := []string{`{"v":"aaaaaaaaaaaaaaaa"}`, `{"v":"bbbbbbbbbbbbbbbb"}`}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Set(ctx, "cfm.trips", []byte(docs[i%2]))
		}(i)
	}
	wg.Wait()

	data, err := repo.Get(ctx, "cfm.trips")
	require.NoError(t, err)
	assert.Contains(t, docs, string(data))
}

func TestBlobRepository_CancelledContext(t *testing.T) {
	repo, err := file.NewBlobRepository(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Set(ctx, "k", []byte("{}")), context.Canceled)
}
