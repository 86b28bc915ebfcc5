package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/metrics"
	"github.com/MrSnakeDoc/navboard/internal/store"
)

const (
	// DefaultMaxRetries is how many times a lost WATCH race is retried.
	DefaultMaxRetries = 5

	retryInitialInterval = 10 * time.Millisecond
	retryMaxInterval     = 250 * time.Millisecond
)

var _ store.DocumentStore = (*Store)(nil)

// Options configures the document store.
type Options struct {
	Key        string // Redis key holding the document (default "data")
	MaxRetries int    // retries after a lost WATCH race (default 5, 0 = no retry)
}

// Store keeps the navigation document as one JSON string under one key.
type Store struct {
	client     *redis.Client
	key        string
	maxRetries int
}

// NewStore creates a new Redis document store
func NewStore(client *redis.Client, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = store.DefaultKey
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	return &Store{
		client:     client,
		key:        opts.Key,
		maxRetries: opts.MaxRetries,
	}
}

// Key returns the Redis key holding the document
func (s *Store) Key() string {
	return s.key
}

// Load retrieves the document, defaulting to an empty one when the key is absent
func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	return s.load(ctx, s.client)
}

// Save overwrites the document
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	data, err := store.Encode(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Update applies fn inside an optimistic transaction: the key is WATCHed
// while reading, and the write only commits if nobody wrote in between.
// Lost races are retried with exponential backoff.
func (s *Store) Update(ctx context.Context, fn store.UpdateFunc) (*domain.Document, error) {
	var (
		out      *domain.Document
		attempts int
	)

	txf := func(tx *redis.Tx) error {
		doc, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		data, err := store.Encode(doc)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		out = doc
		return nil
	}

	op := func() error {
		attempts++
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			metrics.StoreConflicts.Inc()
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(s.newBackoff(), uint64(s.maxRetries)), ctx))
	if errors.Is(err, redis.TxFailedErr) {
		return nil, fmt.Errorf("%w: document kept changing after %d attempts", domain.ErrConcurrentModification, attempts)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Store) load(ctx context.Context, c getter) (*domain.Document, error) {
	data, err := c.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return store.Decode(s.key, data)
}

func (s *Store) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	return b
}
