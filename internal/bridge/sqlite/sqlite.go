// Package sqlite is the embedded bridge backend used by the CLI: a single
// kv_store table in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/dmitrijs2005/furnistore/internal/bridge/sqlite/migrations"
	"github.com/dmitrijs2005/furnistore/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Bridge struct {
	db *sql.DB
}

var _ bridge.Batcher = (*Bridge)(nil)

// New wraps an already migrated database.
func New(db *sql.DB) *Bridge {
	return &Bridge{db: db}
}

// RunMigrations applies the embedded schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Bridge, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializes writers anyway; one connection also keeps ":memory:"
	// databases alive for the lifetime of the bridge.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return New(db), nil
}

func (b *Bridge) Close() error {
	return b.db.Close()
}

func (b *Bridge) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (b *Bridge) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, b.db, key, value)
}

func (b *Bridge) Delete(ctx context.Context, key string) error {
	return del(ctx, b.db, key)
}

func (b *Bridge) SetMany(ctx context.Context, entries []bridge.Entry) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, e := range entries {
			if err := set(ctx, tx, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bridge) DeleteMany(ctx context.Context, keys []string) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if err := del(ctx, tx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, db dbx.DBTX, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}
