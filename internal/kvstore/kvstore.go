// Package kvstore provides the synchronous, string-keyed key-value
// capability the persistence layer is built on. The store itself is safe for
// concurrent access, but read-modify-write sequences above it are not
// coordinated: with more than one logical writer the last write wins, which
// is the documented single-writer model, not a bug to patch here.
package kvstore

import "context"

// Store is the injected key-value capability. Get reports absence through
// its second return value rather than an error. Delete exists so callers
// (and tests) can tear down a namespace between cases.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
