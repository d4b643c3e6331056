package bridge

import "context"

type prefixed struct {
	b      Bridge
	prefix string
}

// Prefixed namespaces every key of b with prefix. An empty prefix returns b
// unchanged.
func Prefixed(b Bridge, prefix string) Bridge {
	if prefix == "" {
		return b
	}
	return &prefixed{b: b, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.b.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.b.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.b.Delete(ctx, p.prefix+key)
}

func (p *prefixed) SetMany(ctx context.Context, entries []Entry) error {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Key: p.prefix + e.Key, Value: e.Value}
	}
	return SetAll(ctx, p.b, out)
}

func (p *prefixed) DeleteMany(ctx context.Context, keys []string) error {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = p.prefix + k
	}
	return DeleteAll(ctx, p.b, out...)
}
