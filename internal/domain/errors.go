package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrInvalidReference is a caller error: the reference is malformed or
	// outside the book's chapter bounds. Never retried.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrUpstreamUnavailable is a transport or HTTP failure talking to the
	// scripture provider. Transient; callers may retry with backoff.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrParse indicates a provider-dialect mismatch or an upstream format
	// change: a non-empty payload yielded no verses.
	ErrParse = errors.New("parse error")

	// ErrPersistence is an annotation read or write failure against the
	// account record store. Surfaced distinctly from content errors so it
	// never blocks reading.
	ErrPersistence = errors.New("persistence error")

	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAtStart and ErrAtEnd signal that the sequencer ran off the edge of
	// the canon: before the first chapter of the first book, or past the
	// last chapter of the last book.
	ErrAtStart = errors.New("at start of canon")
	ErrAtEnd   = errors.New("at end of canon")
)

// InvalidReferenceError carries field detail for a malformed reference.
type InvalidReferenceError struct {
	Field   string
	Message string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference: %s %s", e.Field, e.Message)
}

func (e *InvalidReferenceError) Unwrap() error { return ErrInvalidReference }

// NewInvalidReference creates an InvalidReferenceError for a single field.
func NewInvalidReference(field, message string) *InvalidReferenceError {
	return &InvalidReferenceError{Field: field, Message: message}
}
