package porter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/selah-app/selah/pkg/db"
	"github.com/selah-app/selah/pkg/journal"
)

func setupTestStore(t *testing.T) *journal.Store {
	t.Helper()

	conn, err := db.OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.UpgradeDB(conn, ":memory:", db.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	ctx := context.Background()
	if err := db.Put(ctx, conn, journal.KeyMeditations, "[]"); err != nil {
		t.Fatalf("Failed to seed meditations: %v", err)
	}
	if err := db.Put(ctx, conn, journal.KeySermons, "[]"); err != nil {
		t.Fatalf("Failed to seed sermons: %v", err)
	}

	store, err := journal.Open(ctx, conn)
	if err != nil {
		t.Fatalf("journal.Open failed: %v", err)
	}
	return store
}

func TestPreviewImportFullPayload(t *testing.T) {
	payload := `{
		"meditations": [{"id": 1, "title": "A", "verse": "Jean 3:16", "summary": "s1"}],
		"sermons": [{"id": 10, "title": "La grâce"}],
		"exportDate": "2025-07-01T00:00:00Z",
		"version": "1.0"
	}`

	preview, err := PreviewImport([]byte(payload))
	if err != nil {
		t.Fatalf("PreviewImport failed: %v", err)
	}
	if !preview.Valid() {
		t.Fatalf("Expected valid preview, errors: %v", preview.Errors)
	}
	if len(preview.Meditations) != 1 || len(preview.Sermons) != 1 {
		t.Errorf("Expected 1 meditation and 1 sermon, got %d and %d", len(preview.Meditations), len(preview.Sermons))
	}
}

func TestPreviewImportBareArrayIsMeditationsOnly(t *testing.T) {
	payload := `[{"id": 1, "title": "A", "verse": "Jean 3:16", "summary": "s1"}]`

	preview, err := PreviewImport([]byte(payload))
	if err != nil {
		t.Fatalf("PreviewImport failed: %v", err)
	}
	if len(preview.Meditations) != 1 || len(preview.Sermons) != 0 {
		t.Errorf("Bare array must import as meditations only, got %d/%d", len(preview.Meditations), len(preview.Sermons))
	}
}

func TestPreviewImportMalformedJSON(t *testing.T) {
	_, err := PreviewImport([]byte("{not json"))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("Expected ErrInvalidJSON, got %v", err)
	}
}

func TestPreviewImportRejectsRecordsMissingRequiredFields(t *testing.T) {
	payload := `{
		"meditations": [
			{"id": 1, "title": "A", "verse": "Jean 3:16", "summary": "s1"},
			{"id": 2, "title": "sans verset"}
		],
		"sermons": []
	}`

	preview, err := PreviewImport([]byte(payload))
	if err != nil {
		t.Fatalf("PreviewImport failed: %v", err)
	}
	if len(preview.Meditations) != 1 {
		t.Errorf("Expected only the complete record to survive, got %d", len(preview.Meditations))
	}
	found := false
	for _, msg := range preview.Errors {
		if strings.Contains(msg, "méditation 2") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a report for the rejected record, got %v", preview.Errors)
	}
}

func TestEmptyPayloadRejectedBeforeAnyMutation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	preview, err := PreviewImport([]byte(`{"meditations": [], "sermons": []}`))
	if err != nil {
		t.Fatalf("PreviewImport failed: %v", err)
	}
	if preview.Valid() {
		t.Fatalf("Empty payload must be invalid")
	}

	if err := Apply(ctx, store, preview); !errors.Is(err, ErrNothingToImport) {
		t.Fatalf("Expected ErrNothingToImport, got %v", err)
	}
	if len(store.Meditations()) != 0 || len(store.Sermons()) != 0 {
		t.Errorf("Rejected import must not mutate existing collections")
	}
}

func TestRestoreReplacesCollections(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.AddMeditation(ctx, journal.Meditation{
		Verse: "Psaume 23:1", Title: "Le berger", Summary: "s0",
	}); err != nil {
		t.Fatalf("AddMeditation failed: %v", err)
	}

	snapshot := `{
		"meditations": [{"id": 42, "title": "A", "verse": "Jean 3:16", "summary": "s1"}],
		"sermons": [{"id": 10, "title": "La grâce"}]
	}`

	preview, err := Restore(ctx, store, []byte(snapshot))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(preview.Meditations) != 1 || len(preview.Sermons) != 1 {
		t.Errorf("Expected 1 meditation and 1 sermon restored, got %d and %d", len(preview.Meditations), len(preview.Sermons))
	}

	meds := store.Meditations()
	if len(meds) != 1 || meds[0].ID != 42 {
		t.Errorf("Expected the journal to hold only the restored record, got %v", meds)
	}
	if len(store.Sermons()) != 1 {
		t.Errorf("Expected 1 sermon after restore, got %d", len(store.Sermons()))
	}
}

// A snapshot that parses but holds nothing usable must never wipe the
// journal: the restore is rejected before any write happens.
func TestRestoreRejectsEmptySnapshotWithoutWipingJournal(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.AddMeditation(ctx, journal.Meditation{
		Verse: "Jean 3:16", Title: "A", Summary: "s1",
	})
	if err != nil {
		t.Fatalf("AddMeditation failed: %v", err)
	}

	for _, snapshot := range []string{
		`{}`,
		`[]`,
		`{"meditations": [{"id": 2, "title": "sans verset"}], "sermons": []}`,
	} {
		if _, err := Restore(ctx, store, []byte(snapshot)); !errors.Is(err, ErrNothingToImport) {
			t.Fatalf("Snapshot %q: expected ErrNothingToImport, got %v", snapshot, err)
		}
	}

	meds := store.Meditations()
	if len(meds) != 1 || meds[0].ID != created.ID {
		t.Errorf("Rejected restore must leave the journal untouched, got %v", meds)
	}
}

// Exporting and importing the same payload twice appends duplicate ids.
// This documents the current append-only semantics.
func TestReimportAppendsDuplicateIDs(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.AddMeditation(ctx, journal.Meditation{
		Verse: "Jean 3:16", Title: "A", Summary: "s1",
	})
	if err != nil {
		t.Fatalf("AddMeditation failed: %v", err)
	}

	raw, err := ExportJSON(store.Meditations(), store.Sermons(), time.Now())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		preview, err := PreviewImport(raw)
		if err != nil {
			t.Fatalf("PreviewImport failed: %v", err)
		}
		if err := Apply(ctx, store, preview); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
	}

	count := 0
	for _, m := range store.Meditations() {
		if m.ID == created.ID {
			count++
		}
	}
	if count != 3 {
		t.Errorf("Expected original plus two appended duplicates (3 entries with id %d), got %d", created.ID, count)
	}
}
