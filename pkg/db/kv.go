package db

import (
	"context"
	"database/sql"
	"errors"
)

const (
	getValueStatement = `
	SELECT value
	FROM kv_store
	WHERE key = ?
	`

	putValueStatement = `
	INSERT INTO kv_store (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = unixepoch()
	`

	deleteValueStatement = `
	DELETE FROM kv_store
	WHERE key = ?
	`

	listKeysStatement = `
	SELECT key
	FROM kv_store
	ORDER BY key ASC
	`
)

// Get reads the value stored under key. The second return value reports
// whether the key was present; an absent key is not an error.
func Get(ctx context.Context, conn *sql.DB, key string) (string, bool, error) {
	var value string
	err := conn.QueryRowContext(ctx, getValueStatement, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Put overwrites the value stored under key in full. There is no partial-write
// API: callers serialize the whole collection and last writer wins.
func Put(ctx context.Context, conn *sql.DB, key, value string) error {
	_, err := conn.ExecContext(ctx, putValueStatement, key, value)
	return err
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func Delete(ctx context.Context, conn *sql.DB, key string) error {
	_, err := conn.ExecContext(ctx, deleteValueStatement, key)
	return err
}

// ListKeys returns every key currently present, sorted lexicographically.
func ListKeys(ctx context.Context, conn *sql.DB) ([]string, error) {
	rows, err := conn.QueryContext(ctx, listKeysStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
