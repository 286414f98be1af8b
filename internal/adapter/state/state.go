// Package state is the client's durable local storage: cart, wishlist and
// session survive restarts in a small SQLite file, the way a browser client
// keeps them in local storage.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// ErrCorruptState marks a persisted blob that no longer parses. The blob is
// discarded before the error is returned; the caller starts from empty.
var ErrCorruptState = errors.New("corrupt persisted state")

type kvdb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	*sql.DB
}

// NewDB opens (and on first use bootstraps) the local state file.
func NewDB(ctx context.Context, path string) (DB, error) {
	const op = "state.NewDB"
	log := slog.With("op", op)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return DB{}, fmt.Errorf("%s: %w", op, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return DB{}, fmt.Errorf("%s: setting pragma %q: %w", op, p, err)
		}
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return DB{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("local state is available", "path", path)
	return DB{db}, nil
}

func (d DB) Close() {
	const op = "state.DB.Close"
	log := slog.With("op", op)

	if err := d.DB.Close(); err != nil {
		log.Error("failed to close local state", "err", err)
		return
	}
	log.Info("local state is closed")
}

func getValue(ctx context.Context, db kvdb, key string) (string, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func setValue(ctx context.Context, db kvdb, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;
	`, key, value)
	return err
}

func deleteValue(ctx context.Context, db kvdb, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}
