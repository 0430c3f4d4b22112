// ABOUTME: Note Store owning the ordered in-memory note collection.
// ABOUTME: Every mutation rewrites the whole collection to the kv backend.

package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harper/notes/internal/kv"
	"github.com/harper/notes/internal/models"
	"go.uber.org/zap"
)

// DefaultKey is the fixed storage key holding the serialized collection.
const DefaultKey = "notes"

const minPrefixLen = 6

var (
	ErrValidation      = errors.New("please fill in both title and content")
	ErrNoteNotFound    = errors.New("note not found")
	ErrPersist         = errors.New("failed to save notes")
	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")
)

// Store holds notes newest-created first. Callers only ever see copies.
type Store struct {
	mu      sync.RWMutex
	notes   []*models.Note
	storage kv.Storage
	key     string
	now     func() time.Time
	logger  *zap.Logger
	seed    bool
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed adds a welcome note the first time the key is missing.
func WithSeed(enabled bool) Option {
	return func(s *Store) {
		s.seed = enabled
	}
}

func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open constructs a store and loads it.
func Open(storage kv.Storage, opts ...Option) (*Store, error) {
	s := New(storage, opts...)
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// Load replaces the in-memory collection with what storage holds. Unreadable data
// or data that is not a note array yields an empty collection; bad entries are
// dropped one by one. Only a failed seed write is returned.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = nil

	data, err := s.storage.Get(s.key)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		if !s.seed {
			return nil
		}
		s.notes = []*models.Note{welcomeNote(s.now())}
		s.logger.Info("seeded welcome note")
		return s.persistLocked()
	case err != nil:
		s.logger.Warn("failed to read notes, starting empty", zap.Error(err))
		return nil
	}

	notes, err := decode(data, s.logger)
	if err != nil {
		s.logger.Warn("stored notes are corrupt, starting empty", zap.Error(err))
		return nil
	}
	s.notes = notes
	s.logger.Debug("loaded notes", zap.Int("count", len(notes)))
	return nil
}

func (s *Store) Create(title, content string) (*models.Note, error) {
	in := models.NewInput(title, content)
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := models.NewNote(in, s.now())
	s.notes = append([]*models.Note{note}, s.notes...)
	s.logger.Debug("created note", zap.String("id", note.ID))
	return note.Clone(), s.persistLocked()
}

func (s *Store) Update(id, title, content string) (*models.Note, error) {
	in := models.NewInput(title, content)
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	note := s.notes[i]
	note.Title = in.Title
	note.Content = in.Content
	note.Touch(s.now())
	s.logger.Debug("updated note", zap.String("id", id))
	return note.Clone(), s.persistLocked()
}

// Delete removes the note with id. A missing id is not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	s.logger.Debug("deleted note", zap.String("id", id))
	return s.persistLocked()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = nil
	s.logger.Debug("cleared notes")
	return s.persistLocked()
}

// Append adds already-built notes behind the existing ones, skipping ids that
// are present. It returns how many were added.
func (s *Store) Append(notes []*models.Note) (int, error) {
	for i, n := range notes {
		if n == nil {
			return 0, fmt.Errorf("%w: nil note at index %d", ErrValidation, i)
		}
		if !n.Valid() {
			return 0, fmt.Errorf("%w: note %q", ErrValidation, n.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.notes)+len(notes))
	for _, n := range s.notes {
		seen[n.ID] = true
	}
	added := 0
	for _, n := range notes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		s.notes = append(s.notes, n.Clone())
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.persistLocked()
}

func (s *Store) List() []*models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.notes)
}

// Filter returns notes whose title or content contains term, ignoring case.
// An empty term returns every note.
func (s *Store) Filter(term string) []*models.Note {
	term = strings.ToLower(term)
	if term == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Note
	for _, n := range s.notes {
		if matches(n, term) {
			out = append(out, n.Clone())
		}
	}
	return out
}

func (s *Store) Get(id string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return s.notes[i].Clone(), nil
}

// GetByPrefix resolves an id prefix of at least 6 characters to one note.
func (s *Store) GetByPrefix(prefix string) (*models.Note, error) {
	if len(prefix) < minPrefixLen {
		return nil, ErrPrefixTooShort
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []*models.Note
	for _, n := range s.notes {
		if strings.HasPrefix(n.ID, prefix) {
			found = append(found, n)
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, prefix)
	}
	if len(found) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(found))
	}
	return found[0].Clone(), nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *Store) indexLocked(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full collection. The in-memory state is kept
// whether or not the write succeeds.
func (s *Store) persistLocked() error {
	data, err := encode(s.notes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := s.storage.Set(s.key, data); err != nil {
		s.logger.Error("failed to persist notes", zap.Error(err), zap.Int("count", len(s.notes)))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func matches(n *models.Note, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(n.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(n.Content), lowerTerm)
}

func cloneAll(notes []*models.Note) []*models.Note {
	out := make([]*models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
