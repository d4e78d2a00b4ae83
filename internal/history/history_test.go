package history_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragclient/internal/history"
	"ragclient/internal/kvstore"
	"ragclient/internal/kvstore/memory"
)

func TestStore_LoadEmpty(t *testing.T) {
	s := history.New(memory.NewStorage(), 0, nil)
	entries := s.Load()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestStore_AppendMostRecentFirst(t *testing.T) {
	s := history.New(memory.NewStorage(), 0, nil)
	require.NoError(t, s.Append("first"))
	require.NoError(t, s.Append("second"))
	assert.Equal(t, []string{"second", "first"}, s.Load())
}

func TestStore_DuplicateKeepsPosition(t *testing.T) {
	s := history.New(memory.NewStorage(), 0, nil)
	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, s.Append(q))
	}
	before := s.Load()

	require.NoError(t, s.Append("a"))
	assert.Equal(t, before, s.Load())
	assert.Equal(t, []string{"c", "b", "a"}, s.Load())
}

func TestStore_InvalidUTF8StaysUnique(t *testing.T) {
	s := history.New(memory.NewStorage(), 0, nil)
	require.NoError(t, s.Append("caf\xff"))
	require.NoError(t, s.Append("caf\xff"))
	assert.Equal(t, []string{"caf\uFFFD"}, s.Load())
}

func TestStore_CapacityEvictsOldest(t *testing.T) {
	s := history.New(memory.NewStorage(), 0, nil)
	for i := 1; i <= 25; i++ {
		require.NoError(t, s.Append(fmt.Sprintf("q%d", i)))
		assert.LessOrEqual(t, len(s.Load()), history.DefaultCapacity)
	}
	entries := s.Load()
	require.Len(t, entries, history.DefaultCapacity)
	assert.Equal(t, "q25", entries[0])
	assert.Equal(t, "q6", entries[len(entries)-1])
	assert.NotContains(t, entries, "q5")
}

func TestStore_CorruptStateIsEmpty(t *testing.T) {
	kv := memory.NewStorage()
	require.NoError(t, kv.Put(kvstore.KeyQueryHistory, "{not json"))
	s := history.New(kv, 0, nil)

	assert.Empty(t, s.Load())

	require.NoError(t, s.Append("fresh"))
	assert.Equal(t, []string{"fresh"}, s.Load())
}

func TestStore_WrongShapeIsEmpty(t *testing.T) {
	kv := memory.NewStorage()
	require.NoError(t, kv.Put(kvstore.KeyQueryHistory, `[1, 2, 3]`))
	assert.Empty(t, history.New(kv, 0, nil).Load())

	require.NoError(t, kv.Put(kvstore.KeyQueryHistory, `null`))
	assert.Empty(t, history.New(kv, 0, nil).Load())
}

func TestStore_LoadIsIdempotent(t *testing.T) {
	s := history.New(memory.NewStorage(), 0, nil)
	require.NoError(t, s.Append("x"))
	require.NoError(t, s.Append("y"))
	assert.Equal(t, s.Load(), s.Load())
}

func TestStore_PersistsThroughStorage(t *testing.T) {
	kv := memory.NewStorage()
	require.NoError(t, history.New(kv, 0, nil).Append("kept"))

	raw, ok, err := kv.Get(kvstore.KeyQueryHistory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["kept"]`, raw)

	assert.Equal(t, []string{"kept"}, history.New(kv, 0, nil).Load())
}

func TestStore_Clear(t *testing.T) {
	s := history.New(memory.NewStorage(), 0, nil)
	require.NoError(t, s.Append("gone"))
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Load())
}

type failingStorage struct{ *memory.Storage }

func (failingStorage) Put(string, string) error { return errors.New("disk full") }

func TestStore_AppendPersistError(t *testing.T) {
	s := history.New(failingStorage{memory.NewStorage()}, 0, nil)
	err := s.Append("q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
