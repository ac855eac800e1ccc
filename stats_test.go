package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *StatsStore {
	t.Helper()
	store, err := OpenStatsStore(filepath.Join(t.TempDir(), statsFileName))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStatsStore_PutGet(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("2025-01-01")
	require.NoError(t, err)
	require.False(t, ok)

	want := DailyStats{TypingSeconds: 754, WordCount: 512}
	require.NoError(t, store.Put("2025-01-01", want))

	got, ok, err := store.Get("2025-01-01")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestStatsStore_CorruptRecordIsZero(t *testing.T) {
	store := openTestStore(t)
	err := store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDays))
		if err := b.Put([]byte("2025-01-02"), []byte("typing_seconds: [not, a, number")); err != nil {
			return err
		}
		return b.Put([]byte("2025-01-03"), []byte("typing_seconds: -5\n"))
	})
	require.NoError(t, err)

	for _, day := range []string{"2025-01-02", "2025-01-03"} {
		got, ok, err := store.Get(day)
		require.NoError(t, err)
		assert.False(t, ok, day)
		assert.Equal(t, DailyStats{}, got, day)
	}
}

func TestStatsStore_RangeNewestFirst(t *testing.T) {
	store := openTestStore(t)
	end := time.Date(2025, 5, 10, 12, 0, 0, 0, time.Local)
	require.NoError(t, store.Put("2025-05-10", DailyStats{TypingSeconds: 60}))
	require.NoError(t, store.Put("2025-05-08", DailyStats{TypingSeconds: 120}))

	recs, err := store.Range(end, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "2025-05-10", recs[0].Day)
	assert.Equal(t, int64(60), recs[0].TypingSeconds)
	assert.Equal(t, "2025-05-09", recs[1].Day)
	assert.Equal(t, int64(0), recs[1].TypingSeconds)
	assert.Equal(t, int64(120), recs[2].TypingSeconds)
}

func TestStatsStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), statsFileName)
	store, err := OpenStatsStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("2025-06-01", DailyStats{WordCount: 3}))
	require.NoError(t, store.Close())

	store, err = OpenStatsStore(path)
	require.NoError(t, err)
	defer store.Close()
	got, ok, err := store.Get("2025-06-01")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, got.WordCount)
}
