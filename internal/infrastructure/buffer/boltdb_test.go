package buffer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "outbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEnqueuePeekRemove(t *testing.T) {
	store := openStore(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first, err := NewItem(KindCompletion, map[string]string{"task_id": "t1"})
	require.NoError(t, err)
	second, err := NewItem(KindDigest, map[string]string{"day": "2024-03-01"})
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(first))
	require.NoError(t, store.Enqueue(second))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	items, err := store.Peek(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, KindCompletion, items[0].Kind)
	assert.JSONEq(t, `{"task_id":"t1"}`, string(items[0].Payload))
	assert.NotEmpty(t, items[0].ID)

	require.NoError(t, store.Retry(items[0]))
	items, err = store.Peek(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, KindDigest, items[0].Kind)
	assert.Equal(t, 1, items[1].Retries)

	require.NoError(t, store.Remove(items[0]))
	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestPurge(t *testing.T) {
	store := openStore(t)
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Enqueue(Item{Kind: KindCompletion, Timestamp: old.Add(time.Duration(i) * time.Minute)}))
	}
	require.NoError(t, store.Enqueue(Item{Kind: KindDigest, Timestamp: recent}))

	removed, err := store.Purge(recent.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	items, err := store.Peek(0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, KindDigest, items[0].Kind)
}

func TestClosedStore(t *testing.T) {
	var store *Store
	assert.Error(t, store.Enqueue(Item{}))
	assert.Error(t, store.Ping())
	assert.NoError(t, store.Close())
}
