package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	dir := t.TempDir()
	sqlite, err := OpenSQLiteStore(filepath.Join(dir, "nested", "session.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "nested", "session.json")),
		"sqlite": sqlite,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer store.Close()

			_, ok, err := store.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Save(ctx, []byte(`{"a":1}`)))
			require.NoError(t, store.Save(ctx, []byte(`{"a":2}`)))

			data, ok, err := store.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"a":2}`, string(data))

			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx))
			_, ok, err = store.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenStore(BackendFile, filepath.Join(dir, "s.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = OpenStore(BackendSQLite, filepath.Join(dir, "s.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = OpenStore("etcd", "")
	assert.Error(t, err)
}

func TestSQLiteStore_RoundTripsMachine(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer store.Close()

	m := NewMachine(store)
	defer m.Close()
	require.NoError(t, m.Start(testConfig()))
	require.NoError(t, m.QuestionsReceived(testQuestions))
	answerCurrent(t, m, "a", 9)

	restored := NewMachine(store)
	defer restored.Close()
	ok, err := restored.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, restored.Snapshot().CurrentIndex)
	assert.Equal(t, m.Snapshot().Answers, restored.Snapshot().Answers)
}
