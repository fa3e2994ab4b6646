// Package storage is the client's persistent key-value store. It backs the
// credential cache that survives process restarts: tokens, decoded expiry,
// and the user profile snapshot.
package storage

import "context"

// Repository is a persistent key-value store. Get returns nil (no error)
// for a missing key. The Multi* operations are atomic: either every key is
// applied or none is.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	MultiGet(ctx context.Context, keys []string) (map[string][]byte, error)
	MultiSet(ctx context.Context, values map[string][]byte) error
	MultiRemove(ctx context.Context, keys []string) error
	Clear(ctx context.Context) error
}
