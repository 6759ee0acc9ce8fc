package journal

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/selah-app/selah/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.UpgradeDB(conn, ":memory:", db.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return conn
}

func setupEmptyStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	conn := setupTestDB(t)
	ctx := context.Background()

	// Seed empty collections so the sample-data fallback stays out of the way.
	if err := db.Put(ctx, conn, KeyMeditations, "[]"); err != nil {
		t.Fatalf("Failed to seed empty meditations: %v", err)
	}
	if err := db.Put(ctx, conn, KeySermons, "[]"); err != nil {
		t.Fatalf("Failed to seed empty sermons: %v", err)
	}

	store, err := Open(ctx, conn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return store, conn
}

func validMeditation(title string) Meditation {
	return Meditation{
		Verse:    "Jean 3:16",
		Title:    title,
		Content:  "Car Dieu a tant aimé le monde...",
		Summary:  "Une réflexion sur la grâce.",
		Comments: "À relire.",
		Color:    "blue",
		Time:     TimeMorning,
		Tags:     []string{"amour", "grâce"},
	}
}

func TestOpenFallsBackToSampleData(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	store, err := Open(ctx, conn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if len(store.Meditations()) != len(SampleMeditations()) {
		t.Errorf("Expected sample meditations on first run, got %d", len(store.Meditations()))
	}
	if len(store.Sermons()) != len(SampleSermons()) {
		t.Errorf("Expected sample sermons on first run, got %d", len(store.Sermons()))
	}
}

func TestOpenRejectsMalformedStoredJSON(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	if err := db.Put(ctx, conn, KeyMeditations, "{not json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	_, err := Open(ctx, conn)
	if err == nil {
		t.Fatalf("Open should fail on malformed stored JSON")
	}
}

func TestAddMeditationRoundTrip(t *testing.T) {
	store, conn := setupEmptyStore(t)
	ctx := context.Background()

	in := validMeditation("L'amour de Dieu")
	in.Date = "2025-06-25"
	created, err := store.AddMeditation(ctx, in)
	if err != nil {
		t.Fatalf("AddMeditation failed: %v", err)
	}
	if created.ID == 0 {
		t.Errorf("Expected an assigned id, got 0")
	}

	// Reload from the persisted copy and compare every field.
	reloaded, err := Open(ctx, conn)
	if err != nil {
		t.Fatalf("Open after save failed: %v", err)
	}
	got, err := reloaded.GetMeditation(created.ID)
	if err != nil {
		t.Fatalf("GetMeditation after reload failed: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Errorf("Round-trip mismatch:\nsaved:  %+v\nloaded: %+v", created, got)
	}
}

func TestAddMeditationDefaults(t *testing.T) {
	store, _ := setupEmptyStore(t)
	store.now = func() time.Time { return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	m := Meditation{Verse: "Psaume 23:1", Title: "Le Bon Berger", Summary: "Provision divine."}
	created, err := store.AddMeditation(ctx, m)
	if err != nil {
		t.Fatalf("AddMeditation failed: %v", err)
	}

	if created.Date != "2025-07-01" {
		t.Errorf("Expected date defaulted to creation day, got %q", created.Date)
	}
	if created.Color != "blue" {
		t.Errorf("Expected default color blue, got %q", created.Color)
	}
	if created.Time != TimeMorning {
		t.Errorf("Expected default time morning, got %q", created.Time)
	}
}

func TestAddMeditationValidation(t *testing.T) {
	store, _ := setupEmptyStore(t)
	ctx := context.Background()

	_, err := store.AddMeditation(ctx, Meditation{Title: "Sans verset"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(verr.Missing, []string{"verse", "summary"}) {
		t.Errorf("Expected missing verse and summary, got %v", verr.Missing)
	}
	if len(store.Meditations()) != 0 {
		t.Errorf("Invalid meditation must not be persisted")
	}
}

func TestMeditationIDsUniqueUnderCollision(t *testing.T) {
	store, _ := setupEmptyStore(t)
	fixed := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed } // Every call collides.
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		created, err := store.AddMeditation(ctx, validMeditation("Entrée"))
		if err != nil {
			t.Fatalf("AddMeditation failed: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("Duplicate id assigned: %d", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestUpdateMeditationPreservesID(t *testing.T) {
	store, _ := setupEmptyStore(t)
	ctx := context.Background()

	created, err := store.AddMeditation(ctx, validMeditation("Avant"))
	if err != nil {
		t.Fatalf("AddMeditation failed: %v", err)
	}

	created.Title = "Après"
	updated, err := store.UpdateMeditation(ctx, created)
	if err != nil {
		t.Fatalf("UpdateMeditation failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("Update must preserve id: had %d, got %d", created.ID, updated.ID)
	}
	if got, _ := store.GetMeditation(created.ID); got.Title != "Après" {
		t.Errorf("Expected updated title, got %q", got.Title)
	}

	_, err = store.UpdateMeditation(ctx, validMeditationWithID(999999))
	if !errors.Is(err, ErrMeditationNotFound) {
		t.Errorf("Expected ErrMeditationNotFound for unknown id, got %v", err)
	}
}

func validMeditationWithID(id int64) Meditation {
	m := validMeditation("Inconnu")
	m.ID = id
	return m
}

// The persisted id set must match the in-memory id set after any sequence
// of add/update/delete operations.
func TestPersistedIDsTrackInMemoryIDs(t *testing.T) {
	store, conn := setupEmptyStore(t)
	ctx := context.Background()

	a, _ := store.AddMeditation(ctx, validMeditation("A"))
	b, _ := store.AddMeditation(ctx, validMeditation("B"))
	c, _ := store.AddMeditation(ctx, validMeditation("C"))

	b.Summary = "modifiée"
	if _, err := store.UpdateMeditation(ctx, b); err != nil {
		t.Fatalf("UpdateMeditation failed: %v", err)
	}
	if err := store.DeleteMeditation(ctx, a.ID); err != nil {
		t.Fatalf("DeleteMeditation failed: %v", err)
	}

	reloaded, err := Open(ctx, conn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	wantIDs := map[int64]bool{b.ID: true, c.ID: true}
	gotIDs := make(map[int64]bool)
	for _, m := range reloaded.Meditations() {
		gotIDs[m.ID] = true
	}
	if !reflect.DeepEqual(wantIDs, gotIDs) {
		t.Errorf("Persisted id set %v does not match in-memory id set %v", gotIDs, wantIDs)
	}
}

func TestDeleteMeditationLeavesDanglingFavorites(t *testing.T) {
	store, _ := setupEmptyStore(t)
	ctx := context.Background()

	created, _ := store.AddMeditation(ctx, validMeditation("Favori"))
	if _, err := store.ToggleFavorite(ctx, created.ID); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if err := store.DeleteMeditation(ctx, created.ID); err != nil {
		t.Fatalf("DeleteMeditation failed: %v", err)
	}

	// The raw set keeps the dangling id; the resolved view filters it out.
	if !containsID(store.Favorites(), created.ID) {
		t.Errorf("Raw favorites set should keep the dangling id")
	}
	if len(store.FavoriteMeditations()) != 0 {
		t.Errorf("FavoriteMeditations should filter dangling ids")
	}
}

func TestToggleFavoriteIdempotentAndPersisted(t *testing.T) {
	store, conn := setupEmptyStore(t)
	ctx := context.Background()

	created, _ := store.AddMeditation(ctx, validMeditation("Favori"))

	on, err := store.ToggleFavorite(ctx, created.ID)
	if err != nil || !on {
		t.Fatalf("First toggle should enable, got on=%t err=%v", on, err)
	}

	// Persists across reloads.
	reloaded, err := Open(ctx, conn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !reloaded.IsFavorite(created.ID) {
		t.Errorf("Favorite state should persist across reloads")
	}

	off, err := store.ToggleFavorite(ctx, created.ID)
	if err != nil || off {
		t.Fatalf("Second toggle should restore original state, got on=%t err=%v", off, err)
	}
}

func TestTogglePin(t *testing.T) {
	store, _ := setupEmptyStore(t)
	ctx := context.Background()

	created, _ := store.AddMeditation(ctx, validMeditation("Épinglée"))

	if store.IsPinned(created.ID) {
		t.Fatalf("New meditation should not be pinned")
	}
	if _, err := store.TogglePin(ctx, created.ID); err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if !store.IsPinned(created.ID) {
		t.Errorf("Expected pinned after toggle")
	}
	if _, err := store.TogglePin(ctx, created.ID); err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if store.IsPinned(created.ID) {
		t.Errorf("Expected unpinned after second toggle")
	}
}

func TestSermonLifecycle(t *testing.T) {
	store, _ := setupEmptyStore(t)
	store.now = func() time.Time { return time.Date(2025, 7, 2, 8, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	created, err := store.AddSermon(ctx, Sermon{
		Title:      "La grâce qui sauve",
		Theme:      "Salut",
		Outline:    "1. La condition de l'homme",
		References: []int64{42},
	})
	if err != nil {
		t.Fatalf("AddSermon failed: %v", err)
	}
	if created.Status != StatusPreparing {
		t.Errorf("Expected default status preparing, got %q", created.Status)
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Errorf("Expected timestamps to be stamped")
	}

	created.Status = StatusReady
	updated, err := store.UpdateSermon(ctx, created)
	if err != nil {
		t.Fatalf("UpdateSermon failed: %v", err)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("Update must preserve CreatedAt")
	}

	if err := store.DeleteSermon(ctx, created.ID); err != nil {
		t.Fatalf("DeleteSermon failed: %v", err)
	}
	if err := store.DeleteSermon(ctx, created.ID); !errors.Is(err, ErrSermonNotFound) {
		t.Errorf("Expected ErrSermonNotFound on second delete, got %v", err)
	}
}

func TestSermonDanglingReferencesResolveToNothing(t *testing.T) {
	store, _ := setupEmptyStore(t)
	ctx := context.Background()

	m, _ := store.AddMeditation(ctx, validMeditation("Référencée"))
	sermon := Sermon{Title: "Avec références", References: []int64{m.ID, 424242}}

	resolved := sermon.ResolveReferences(store.Meditations())
	if len(resolved) != 1 || resolved[0].ID != m.ID {
		t.Errorf("Expected only the live reference to resolve, got %v", resolved)
	}
}
