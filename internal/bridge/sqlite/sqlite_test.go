package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Bridge {
	t.Helper()
	b, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	b := openMemory(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "cart", []byte(`[]`)))

	v, err := b.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	b := openMemory(t)

	v, err := b.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	b := openMemory(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "token", []byte("old")))
	require.NoError(t, b.Set(ctx, "token", []byte("new")))

	v, err := b.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	b := openMemory(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", nil))
	v, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Empty(t, v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	b := openMemory(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, b.Delete(ctx, "x"))

	v, err := b.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, b.Delete(ctx, "x"))
}

func TestSetManyDeleteMany(t *testing.T) {
	b := openMemory(t)
	ctx := context.Background()

	require.NoError(t, bridge.SetAll(ctx, b, []bridge.Entry{
		{Key: "token", Value: []byte("t")},
		{Key: "user", Value: []byte(`{"id":"1"}`)},
	}))

	v, err := b.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(v))

	require.NoError(t, bridge.DeleteAll(ctx, b, "token", "user"))
	for _, k := range []string{"token", "user"} {
		v, err := b.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestOpen_FilePersistsAcrossReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "furnistore.db")
	ctx := context.Background()

	b1, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, b1.Set(ctx, "cart", []byte(`[{"id":"l1"}]`)))
	require.NoError(t, b1.Close())

	b2, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer b2.Close()

	v, err := b2.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"l1"}]`, string(v))
}

func TestErrorsAreWrapped(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	b := New(db)
	require.NoError(t, db.Close())
	ctx := context.Background()

	_, err = b.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	require.ErrorContains(t, b.Set(ctx, "k", []byte("v")), "failed to set kv[k]")
	require.ErrorContains(t, b.Delete(ctx, "k"), "failed to delete kv[k]")
	require.Error(t, b.SetMany(ctx, []bridge.Entry{{Key: "k"}}))
	require.Error(t, b.DeleteMany(ctx, []string{"k"}))
}
