package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/store"
)

var _ store.DocumentStore = (*Store)(nil)

// Store keeps the serialized navigation document in process memory.
// It is used when no Redis is configured and as the backend for tests.
type Store struct {
	mu        sync.RWMutex
	key       string
	data      []byte // nil means nothing stored
	lastWrite time.Time
}

// New creates an empty memory store.
func New(key string) *Store {
	if key == "" {
		key = store.DefaultKey
	}
	return &Store{key: key}
}

// Load returns the stored document or the default one
func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadLocked()
}

// Save overwrites the stored document
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	data, err := store.Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	s.lastWrite = time.Now()
	return nil
}

// Update serializes read-modify-write cycles under the store lock.
func (s *Store) Update(ctx context.Context, fn store.UpdateFunc) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}

	data, err := store.Encode(doc)
	if err != nil {
		return nil, err
	}
	s.data = data
	s.lastWrite = time.Now()
	return doc, nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

// SetRaw replaces the stored bytes without validation.
func (s *Store) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	s.lastWrite = time.Now()
}

// Raw returns a copy of the stored bytes, or nil when nothing is stored.
func (s *Store) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// LastWrite returns the time of the last write, zero if none.
func (s *Store) LastWrite() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastWrite
}

func (s *Store) loadLocked() (*domain.Document, error) {
	if s.data == nil {
		return domain.NewDocument(), nil
	}
	return store.Decode(s.key, s.data)
}
