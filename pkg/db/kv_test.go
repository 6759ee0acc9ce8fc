package db

import (
	"context"
	"database/sql"
	"testing"
)

func setupKVTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("OpenDBConnection failed for in-memory DB: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := UpgradeDB(conn, ":memory:", TargetSchemaVersion); err != nil {
		t.Fatalf("UpgradeDB failed: %v", err)
	}

	return conn
}

func TestGetMissingKey(t *testing.T) {
	conn := setupKVTestDB(t)
	ctx := context.Background()

	value, found, err := Get(ctx, conn, "meditations")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Errorf("Expected missing key to report found=false, got found=true with value %q", value)
	}
}

func TestPutThenGet(t *testing.T) {
	conn := setupKVTestDB(t)
	ctx := context.Background()

	payload := `[{"id":1,"title":"L'amour de Dieu"}]`
	if err := Put(ctx, conn, "meditations", payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, found, err := Get(ctx, conn, "meditations")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatalf("Expected key to be found after Put")
	}
	if value != payload {
		t.Errorf("Expected value %q, got %q", payload, value)
	}
}

func TestPutOverwritesInFull(t *testing.T) {
	conn := setupKVTestDB(t)
	ctx := context.Background()

	if err := Put(ctx, conn, "sermons", `[{"id":1}]`); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := Put(ctx, conn, "sermons", `[]`); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	value, found, err := Get(ctx, conn, "sermons")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || value != `[]` {
		t.Errorf("Expected last write to win with value '[]', got found=%t value=%q", found, value)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	conn := setupKVTestDB(t)
	ctx := context.Background()

	if err := Put(ctx, conn, "meditation_favorites", `[1,2]`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := Delete(ctx, conn, "meditation_favorites"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Deleting an absent key must not error.
	if err := Delete(ctx, conn, "meditation_favorites"); err != nil {
		t.Fatalf("Delete of absent key failed: %v", err)
	}

	_, found, err := Get(ctx, conn, "meditation_favorites")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Errorf("Expected key to be gone after Delete")
	}
}

func TestListKeys(t *testing.T) {
	conn := setupKVTestDB(t)
	ctx := context.Background()

	for _, key := range []string{"sermons", "meditations", "appBrightness"} {
		if err := Put(ctx, conn, key, "x"); err != nil {
			t.Fatalf("Put(%s) failed: %v", key, err)
		}
	}

	keys, err := ListKeys(ctx, conn)
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}

	expected := []string{"appBrightness", "meditations", "sermons"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d: %v", len(expected), len(keys), keys)
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("Expected key %q at position %d, got %q", key, i, keys[i])
		}
	}
}
