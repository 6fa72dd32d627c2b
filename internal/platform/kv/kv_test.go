package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sankalp/internal/platform/kv"
)

func exerciseStore(t *testing.T, store kv.Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, kv.KeyState)
	require.NoError(t, err)
	require.False(t, found, "fresh store must report absent key")

	require.NoError(t, store.Set(ctx, kv.KeyState, []byte(`{"dailyTarget":7}`)))
	require.NoError(t, store.Set(ctx, kv.KeyReminders, []byte(`[]`)))
	require.NoError(t, store.Set(ctx, kv.KeyState, []byte(`{"dailyTarget":11}`)))

	got, found, err := store.Get(ctx, kv.KeyState)
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"dailyTarget":11}`, string(got))

	got, found, err = store.Get(ctx, kv.KeyReminders)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "[]", string(got))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exerciseStore(t, kv.NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	store, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "sankalp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "state")
	store := kv.NewFileStore(dir)
	exerciseStore(t, store)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{kv.KeyState + ".json", kv.KeyReminders + ".json"}, names)
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := kv.NewFileStore(dir)
	w, err := kv.NewWatcher(dir, kv.MatchPrefix("sankalp."), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, store.Set(ctx, kv.KeyState, []byte(`{}`)))
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal after write")
	}
}
