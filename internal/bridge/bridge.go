// Package bridge is the persistence boundary of the stores: a byte-oriented
// key/value contract, a JSON codec that fails open on bad data, and the
// in-process implementations (memory, prefixed, sealed). Durable backends
// live in sub-packages.
package bridge

import (
	"context"
	"errors"
)

// ErrCorrupted reports a stored value that cannot be decoded.
var ErrCorrupted = errors.New("corrupted value")

// Bridge is a durable key/value medium.
//
// Get returns (nil, nil) when the key is absent. Delete of an absent key is
// not an error. Implementations give no atomicity across keys.
type Bridge interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Entry is a single key/value pair for batched writes.
type Entry struct {
	Key   string
	Value []byte
}

// Batcher is implemented by backends that can write or delete several keys
// in one round trip (and, for SQL backends, in one transaction).
type Batcher interface {
	SetMany(ctx context.Context, entries []Entry) error
	DeleteMany(ctx context.Context, keys []string) error
}

// SetAll writes entries through Batcher when b supports it, one by one
// otherwise.
func SetAll(ctx context.Context, b Bridge, entries []Entry) error {
	if bb, ok := b.(Batcher); ok {
		return bb.SetMany(ctx, entries)
	}
	for _, e := range entries {
		if err := b.Set(ctx, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll removes keys through Batcher when b supports it. The sequential
// path keeps going after a failure and returns the joined errors.
func DeleteAll(ctx context.Context, b Bridge, keys ...string) error {
	if bb, ok := b.(Batcher); ok {
		return bb.DeleteMany(ctx, keys)
	}
	var errs []error
	for _, k := range keys {
		if err := b.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
