package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a category or site position does not
	// exist in the current document.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMalformedPayload is returned when an inbound request is missing
	// required fields or has the wrong shape.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrStorageCorruption is returned when a stored value exists but cannot
	// be parsed into a Document. It is never silently defaulted.
	ErrStorageCorruption = errors.New("storage corruption")

	// ErrConcurrentModification is returned when the document changed between
	// the read a caller based its positions on and the write.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// IndexKind names which position of a request was invalid.
type IndexKind string

const (
	IndexCategory       IndexKind = "category"
	IndexSite           IndexKind = "site"
	IndexTargetCategory IndexKind = "target category"
)

// IndexError reports an invalid position against the length of the sequence
// it was checked against.
type IndexError struct {
	Kind  IndexKind
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Kind, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// ConflictError reports a revision precondition that did not hold.
type ConflictError struct {
	ExpectedRevision string
	CurrentRevision  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document revision is %s, expected %s", e.CurrentRevision, e.ExpectedRevision)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConcurrentModification
}

// PayloadError reports an invalid request field.
type PayloadError struct {
	Field  string
	Reason string
}

func (e *PayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed payload: %s", e.Reason)
	}
	return fmt.Sprintf("malformed payload: %s %s", e.Field, e.Reason)
}

func (e *PayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

func checkIndex(kind IndexKind, idx, n int) error {
	if idx < 0 || idx >= n {
		return &IndexError{Kind: kind, Index: idx, Len: n}
	}
	return nil
}
