// Package kvstore provides the durable key-value capability backing
// client-durable state such as the cart and search history. Implementations
// must persist synchronously on Set and survive process restarts; callers
// treat missing or unreadable values as absent, never as fatal.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the minimal durable key-value surface.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
