package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/furnistore/internal/logging"
)

// JSON layers JSON serialization over a Bridge.
type JSON struct {
	b   Bridge
	log logging.Logger
}

func NewJSON(b Bridge, log logging.Logger) *JSON {
	return &JSON{b: b, log: log}
}

// Bridge returns the underlying bridge.
func (j *JSON) Bridge() Bridge {
	return j.b
}

// Read decodes the value under key into v and reports whether it did.
// A missing key, a backend error and malformed JSON all read as "absent";
// the latter two are logged and never returned.
func (j *JSON) Read(ctx context.Context, key string, v any) bool {
	data, err := j.b.Get(ctx, key)
	if err != nil {
		j.log.Warn(ctx, "bridge read failed, treating as absent", "key", key, "error", err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		j.log.Warn(ctx, "discarding malformed snapshot", "key", key, "error", err)
		return false
	}
	return true
}

// Write encodes v and stores it under key.
func (j *JSON) Write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := j.b.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// WriteAll encodes every value first and then stores them with SetAll.
func (j *JSON) WriteAll(ctx context.Context, values map[string]any) error {
	entries := make([]Entry, 0, len(values))
	for k, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", k, err)
		}
		entries = append(entries, Entry{Key: k, Value: data})
	}
	if err := SetAll(ctx, j.b, entries); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// Remove deletes keys.
func (j *JSON) Remove(ctx context.Context, keys ...string) error {
	if err := DeleteAll(ctx, j.b, keys...); err != nil {
		return fmt.Errorf("delete %v: %w", keys, err)
	}
	return nil
}
