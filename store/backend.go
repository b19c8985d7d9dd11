// Package store implements the dual-mode data-access core: a durable
// SQLite-backed document store, a stateless mock store for contexts without
// persistence, and the runtime factory that selects between them once per
// execution context.
package store

import "context"

// Backend is the storage capability shared by the local and mock stores.
// Records are JSON documents keyed by a string id within named collections.
//
// FindUnique returns nil without error when no record matches. Update fails
// with ErrNotFound for a missing id; Delete does not (it is idempotent and
// returns the id it was asked to remove). Create fails with ErrDuplicateKey
// when a caller-supplied id already exists. Upsert probes with where, updates
// the found record by its own id, or creates a record carrying where's key
// fields so the same probe finds it afterwards.
type Backend interface {
	FindUnique(ctx context.Context, collection string, where Where) (Document, error)
	FindMany(ctx context.Context, collection string, opts FindOptions) ([]Document, error)
	Create(ctx context.Context, collection string, data Document) (Document, error)
	Update(ctx context.Context, collection string, id string, patch Document) (Document, error)
	Delete(ctx context.Context, collection string, id string) (string, error)
	Upsert(ctx context.Context, collection string, where Where, create, update Document) (Document, error)
	Close() error
}
