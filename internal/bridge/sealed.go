package bridge

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/furnistore/internal/cryptox"
)

type sealed struct {
	b   Bridge
	key []byte
}

// Sealed encrypts values with AES-GCM before they reach b. A value that
// does not decrypt is reported as ErrCorrupted.
func Sealed(b Bridge, key []byte) Bridge {
	return &sealed{b: b, key: key}
}

func (s *sealed) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.b.Get(ctx, key)
	if err != nil || data == nil {
		return data, err
	}
	plain, err := cryptox.Open(data, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, key, err)
	}
	return plain, nil
}

func (s *sealed) Set(ctx context.Context, key string, value []byte) error {
	data, err := cryptox.Seal(value, s.key)
	if err != nil {
		return err
	}
	return s.b.Set(ctx, key, data)
}

func (s *sealed) Delete(ctx context.Context, key string) error {
	return s.b.Delete(ctx, key)
}

func (s *sealed) SetMany(ctx context.Context, entries []Entry) error {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		data, err := cryptox.Seal(e.Value, s.key)
		if err != nil {
			return err
		}
		out[i] = Entry{Key: e.Key, Value: data}
	}
	return SetAll(ctx, s.b, out)
}

func (s *sealed) DeleteMany(ctx context.Context, keys []string) error {
	return DeleteAll(ctx, s.b, keys...)
}
