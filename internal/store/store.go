// Package store holds the MongoDB persistence layer. Writes follow a
// load-mutate-$set pattern with upserts; per-document update atomicity is
// the only concurrency guarantee (concurrent writers are last-write-wins).
package store

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)
