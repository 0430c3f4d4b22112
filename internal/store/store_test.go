// ABOUTME: Tests for the Note Store lifecycle, filtering, and persistence.
// ABOUTME: Covers validation, not-found handling, seeding, and corrupt data.

package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/notes/internal/kv"
	"github.com/harper/notes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances one second per call so timestamps are distinct.
func stepClock() func() time.Time {
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

type failingStorage struct {
	*kv.Memory
	failSet bool
	failGet bool
}

func (f *failingStorage) Get(key string) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("storage unavailable")
	}
	return f.Memory.Get(key)
}

func (f *failingStorage) Set(key string, value []byte) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(key, value)
}

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s, err := Open(mem, WithClock(stepClock()))
	require.NoError(t, err)
	return s, mem
}

func TestCreatePrepends(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.Create("First", "one")
	require.NoError(t, err)
	second, err := s.Create("Second", "two")
	require.NoError(t, err)

	notes := s.List()
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
	assert.True(t, second.CreatedAt.Equal(second.UpdatedAt))
}

func TestCreateValidation(t *testing.T) {
	s, mem := newTestStore(t)

	_, err := s.Create("", "x")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Create("x", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 0, s.Len())
	_, err = mem.Get(DefaultKey)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound, "failed validation must not write")
}

func TestUpdatePreservesIdentity(t *testing.T) {
	s, _ := newTestStore(t)

	note, err := s.Create("Title", "body")
	require.NoError(t, err)
	other, err := s.Create("Other", "body")
	require.NoError(t, err)

	updated, err := s.Update(note.ID, " New title ", "new body")
	require.NoError(t, err)

	assert.Equal(t, note.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(note.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(note.UpdatedAt))
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "new body", updated.Content)

	// order is not changed by updates
	notes := s.List()
	assert.Equal(t, other.ID, notes[0].ID)
	assert.Equal(t, note.ID, notes[1].ID)
}

func TestUpdateMissing(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create("Title", "body")
	require.NoError(t, err)

	_, err = s.Update("does-not-exist", "a", "b")
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestUpdateValidation(t *testing.T) {
	s, _ := newTestStore(t)
	note, err := s.Create("Title", "body")
	require.NoError(t, err)

	_, err = s.Update(note.ID, "Title", "")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := s.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "body", got.Content)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	a, _ := s.Create("A", "a")
	b, _ := s.Create("B", "b")

	require.NoError(t, s.Delete(a.ID))
	notes := s.List()
	require.Len(t, notes, 1)
	assert.Equal(t, b.ID, notes[0].ID)

	require.NoError(t, s.Delete("missing"))
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s, mem := newTestStore(t)
	_, _ = s.Create("A", "a")
	_, _ = s.Create("B", "b")

	require.NoError(t, s.Clear())
	assert.Empty(t, s.List())

	data, err := mem.Get(DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFilter(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.Create("Go Programming", "Learn about goroutines")
	_, _ = s.Create("Cooking", "How to make PASTA")
	_, _ = s.Create("Shopping", "pasta, tomatoes")

	assert.Len(t, s.Filter(""), 3)

	got := s.Filter("pasta")
	require.Len(t, got, 2)
	assert.Equal(t, "Shopping", got[0].Title)
	assert.Equal(t, "Cooking", got[1].Title)

	got = s.Filter("PROGRAM")
	require.Len(t, got, 1)
	assert.Equal(t, "Go Programming", got[0].Title)

	assert.Empty(t, s.Filter("nonexistent"))
}

func TestListReturnsCopies(t *testing.T) {
	s, _ := newTestStore(t)
	note, _ := s.Create("A", "a")

	s.List()[0].Title = "mutated"

	got, err := s.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestGetByPrefix(t *testing.T) {
	s, _ := newTestStore(t)
	note, _ := s.Create("A", "a")

	got, err := s.GetByPrefix(note.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	_, err = s.GetByPrefix("abc")
	assert.ErrorIs(t, err, ErrPrefixTooShort)

	_, err = s.GetByPrefix("zzzzzzzz")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestGetByPrefixAmbiguous(t *testing.T) {
	mem := kv.NewMemory()
	now := time.Now()
	notes := []*models.Note{
		{ID: "abcdef-1", Title: "a", Content: "a", CreatedAt: now, UpdatedAt: now},
		{ID: "abcdef-2", Title: "b", Content: "b", CreatedAt: now, UpdatedAt: now},
	}
	data, err := encode(notes)
	require.NoError(t, err)
	require.NoError(t, mem.Set(DefaultKey, data))

	s, err := Open(mem)
	require.NoError(t, err)

	_, err = s.GetByPrefix("abcdef")
	assert.ErrorIs(t, err, ErrAmbiguousPrefix)
}

func TestRoundTrip(t *testing.T) {
	for _, backend := range kv.Backends() {
		t.Run(backend, func(t *testing.T) {
			storage, err := kv.Open(backend, filepath.Join(t.TempDir(), "data"))
			require.NoError(t, err)
			defer func() { _ = storage.Close() }()

			s, err := Open(storage, WithClock(stepClock()))
			require.NoError(t, err)
			_, _ = s.Create("One", "first")
			n2, _ := s.Create("Two", "second")
			_, _ = s.Create("Three", "third")
			_, err = s.Update(n2.ID, "Two", "second, edited")
			require.NoError(t, err)

			reloaded, err := Open(storage)
			require.NoError(t, err)
			assertSameNotes(t, s.List(), reloaded.List())
		})
	}
}

func TestLoadSeedsWelcomeOnFirstRun(t *testing.T) {
	mem := kv.NewMemory()

	s, err := Open(mem, WithSeed(true))
	require.NoError(t, err)
	notes := s.List()
	require.Len(t, notes, 1)
	assert.Equal(t, welcomeTitle, notes[0].Title)

	// the seed is persisted, reloading keeps the same note
	again, err := Open(mem, WithSeed(true))
	require.NoError(t, err)
	assertSameNotes(t, notes, again.List())
}

func TestLoadDoesNotReseedAfterClear(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Open(mem, WithSeed(true))
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	again, err := Open(mem, WithSeed(true))
	require.NoError(t, err)
	assert.Empty(t, again.List())
}

func TestLoadCorruptData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"wrong shape", `{"id":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := kv.NewMemory()
			require.NoError(t, mem.Set(DefaultKey, []byte(tt.data)))

			s, err := Open(mem, WithSeed(true))
			require.NoError(t, err)
			assert.Empty(t, s.List())

			// the store is usable afterwards
			_, err = s.Create("Fresh", "start")
			require.NoError(t, err)
		})
	}
}

func TestLoadDropsBadEntriesKeepsSiblings(t *testing.T) {
	const keep = `{"id":"a1","title":"Keep me","content":"important","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}`
	tests := []struct {
		name string
		bad  string
	}{
		{"blank content", `{"id":"b2","title":"bad","content":"   ","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}`},
		{"empty title", `{"id":"b2","title":"","content":"c","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}`},
		{"duplicate id", `{"id":"a1","title":"Second copy","content":"c","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}`},
		{"updated before created", `{"id":"b2","title":"t","content":"c","createdAt":"2025-01-02T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := kv.NewMemory()
			require.NoError(t, mem.Set(DefaultKey, []byte("["+keep+","+tt.bad+"]")))

			s, err := Open(mem, WithSeed(true))
			require.NoError(t, err)
			notes := s.List()
			require.Len(t, notes, 1)
			assert.Equal(t, "Keep me", notes[0].Title)
			assert.Equal(t, "important", notes[0].Content)

			_, err = s.Create("new", "note")
			require.NoError(t, err)

			reloaded, err := Open(mem)
			require.NoError(t, err)
			require.Equal(t, 2, reloaded.Len())
			_, err = reloaded.Get("a1")
			assert.NoError(t, err)
		})
	}
}

func TestLoadReadFailure(t *testing.T) {
	fs := &failingStorage{Memory: kv.NewMemory(), failGet: true}
	s, err := Open(fs)
	require.NoError(t, err)
	assert.Empty(t, s.List())
}

func TestPersistFailureKeepsMemory(t *testing.T) {
	fs := &failingStorage{Memory: kv.NewMemory()}
	s, err := Open(fs)
	require.NoError(t, err)

	fs.failSet = true
	note, err := s.Create("Title", "body")
	assert.ErrorIs(t, err, ErrPersist)
	require.NotNil(t, note)
	assert.Equal(t, 1, s.Len())

	_, err = s.Update(note.ID, "Title", "edited")
	assert.ErrorIs(t, err, ErrPersist)
	got, _ := s.Get(note.ID)
	assert.Equal(t, "edited", got.Content)

	fs.failSet = false
	_, err = s.Create("Second", "body")
	require.NoError(t, err)

	reloaded, err := Open(fs)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())
}

func TestAppend(t *testing.T) {
	s, _ := newTestStore(t)
	existing, _ := s.Create("Existing", "body")

	now := time.Now()
	incoming := []*models.Note{
		{ID: existing.ID, Title: "dup", Content: "dup", CreatedAt: now, UpdatedAt: now},
		{ID: "imported-1", Title: "Imported", Content: "body", CreatedAt: now, UpdatedAt: now},
	}
	added, err := s.Append(incoming)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	notes := s.List()
	require.Len(t, notes, 2)
	assert.Equal(t, existing.ID, notes[0].ID)
	assert.Equal(t, "imported-1", notes[1].ID)

	_, err = s.Append([]*models.Note{{ID: "bad", CreatedAt: now, UpdatedAt: now}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Append([]*models.Note{{ID: "imported-2", Title: "Ok", Content: "body", CreatedAt: now, UpdatedAt: now}, nil})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 2, s.Len())
}

// Groceries walks a note through its whole lifecycle.
func TestGroceriesScenario(t *testing.T) {
	s, _ := newTestStore(t)

	note, err := s.Create("Groceries", "milk, eggs")
	require.NoError(t, err)
	require.Len(t, s.List(), 1)

	found := s.Filter("MILK")
	require.Len(t, found, 1)
	assert.Equal(t, note.ID, found[0].ID)

	updated, err := s.Update(note.ID, "Groceries", "milk, eggs, bread")
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Equal(note.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(note.CreatedAt))

	require.NoError(t, s.Delete(note.ID))
	assert.Empty(t, s.List())
}

func assertSameNotes(t *testing.T, want, got []*models.Note) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Content, got[i].Content)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt), "createdAt at %d", i)
		assert.True(t, want[i].UpdatedAt.Equal(got[i].UpdatedAt), "updatedAt at %d", i)
	}
}
