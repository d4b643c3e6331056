// Package postgres stores bridge values in a PostgreSQL kv_store table so
// several storefront API instances can share visitor state.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/dmitrijs2005/furnistore/internal/bridge/postgres/migrations"
	"github.com/dmitrijs2005/furnistore/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Bridge struct {
	db *sql.DB
}

var _ bridge.Batcher = (*Bridge)(nil)

func New(db *sql.DB) *Bridge {
	return &Bridge{db: db}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open connects with the pgx stdlib driver and migrates the schema.
func Open(ctx context.Context, dsn string) (*Bridge, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return New(db), nil
}

func (b *Bridge) Close() error {
	return b.db.Close()
}

func (b *Bridge) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
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
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func del(ctx context.Context, db dbx.DBTX, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
