package store

import "errors"

// Sentinel errors surfaced by store operations. Engine failures (disk, quota,
// transaction aborts) are wrapped with %w and propagated, never retried.
var (
	ErrStorageUnavailable = errors.New("storage unavailable in this context")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate record id")
	ErrUnknownCollection  = errors.New("unknown collection")
)
