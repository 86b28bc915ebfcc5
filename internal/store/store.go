package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/navboard/internal/domain"
)

// DefaultKey is the key holding the navigation document.
const DefaultKey = "data"

// UpdateFunc edits a freshly loaded document in memory.
// Returning an error aborts the update and nothing is written.
type UpdateFunc func(doc *domain.Document) error

// DocumentStore persists exactly one navigation document.
type DocumentStore interface {
	// Load returns the stored document, or the default empty document when
	// nothing is stored. A stored value that cannot be decoded is reported
	// as a *CorruptionError.
	Load(ctx context.Context) (*domain.Document, error)

	// Save overwrites the stored document unconditionally.
	Save(ctx context.Context, doc *domain.Document) error

	// Update runs one read-modify-write cycle and returns the written document.
	Update(ctx context.Context, fn UpdateFunc) (*domain.Document, error)

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}

// CorruptionError wraps a decode failure of a stored value.
type CorruptionError struct {
	Key string
	Err error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("stored document %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

func (e *CorruptionError) Is(target error) bool {
	return target == domain.ErrStorageCorruption
}

// Encode serializes a document. Nil slices are normalized first, so the
// output never contains "null" for categories or sites.
func Encode(doc *domain.Document) ([]byte, error) {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// Decode parses a stored value into a document.
//
// JSON null, a non-object value or a document with a missing or non-array
// "categories" field is corruption, not absence. Document is the canonical
// shape: unknown fields are dropped here and gone after the next write.
func Decode(key string, data []byte) (*domain.Document, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, &CorruptionError{Key: key, Err: fmt.Errorf("document is null")}
	}

	var raw struct {
		Categories *[]domain.Category `json:"categories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptionError{Key: key, Err: err}
	}
	if raw.Categories == nil {
		return nil, &CorruptionError{Key: key, Err: fmt.Errorf("missing categories")}
	}

	doc := &domain.Document{Categories: *raw.Categories}
	doc.Normalize()
	return doc, nil
}
