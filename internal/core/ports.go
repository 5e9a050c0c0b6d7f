package core

import (
	"context"
)

// ContactDirectory defines the interface for the external contact service
// that owns contact identities.
type ContactDirectory interface {
	// GetOrCreate returns the identifier of the contact matching the given
	// fields, creating a new contact when no match exists. Repeated calls
	// with identical fields return the same identifier.
	GetOrCreate(ctx context.Context, fields ResolvedFields) (string, error)
}

// FirstNameChecker answers whether a single name token is a known first
// name.
type FirstNameChecker interface {
	IsFirstName(ctx context.Context, token string) (bool, error)
}

// FirstNameSource lists the authoritative set of first names from a contact
// store.
type FirstNameSource interface {
	// ListDistinctFirstNames returns every distinct non-empty first name,
	// skipping soft-deleted contacts when excludeDeleted is set.
	ListDistinctFirstNames(ctx context.Context, excludeDeleted bool) ([]string, error)
}

// KVStore persists small named blobs across restarts. Staleness is judged by
// the caller, not the store.
type KVStore interface {
	// Get retrieves the value stored under a namespace and key
	Get(ctx context.Context, namespace, key string) ([]byte, error)

	// Set stores a value under a namespace and key
	Set(ctx context.Context, namespace, key string, value []byte) error

	// Delete removes a stored value
	Delete(ctx context.Context, namespace, key string) error

	// Close releases any resources held by the store
	Close() error
}

// RecordSink accepts updated records for persistence after resolution.
type RecordSink interface {
	Persist(ctx context.Context, record Record) error
}
