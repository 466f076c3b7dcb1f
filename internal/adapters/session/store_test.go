package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/pipegen/internal/domain/models"
)

func newSession(id string) *models.Session {
	return &models.Session{ID: id, CreatedAt: time.Now()}
}

func TestNewID_Format(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC)
	id := NewID(now)

	assert.Contains(t, id, "20250601_143005")
	assert.Greater(t, len(id), len("20250601_143005"))
}

func TestNewID_Unique(t *testing.T) {
	now := time.Now()
	a := NewID(now)
	b := NewID(now)
	assert.NotEqual(t, a, b)
}

func TestStore_PutGet(t *testing.T) {
	store := NewStore(time.Minute, 10)
	defer store.Close()

	store.Put(newSession("s1"))

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "s1", got.ID)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStore_ExpiredSessionInvisible(t *testing.T) {
	store := NewStore(10*time.Millisecond, 10)
	defer store.Close()

	store.Put(newSession("s1"))
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get("s1")
	assert.False(t, ok)
}

func TestStore_EvictsOldestWhenFull(t *testing.T) {
	store := NewStore(time.Minute, 2)
	defer store.Close()

	store.Put(newSession("first"))
	time.Sleep(5 * time.Millisecond)
	store.Put(newSession("second"))
	time.Sleep(5 * time.Millisecond)
	store.Put(newSession("third"))

	assert.Equal(t, 2, store.Len())

	_, ok := store.Get("first")
	assert.False(t, ok)

	_, ok = store.Get("third")
	assert.True(t, ok)
}
