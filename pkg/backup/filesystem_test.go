package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func setupBackend(t *testing.T) *Filesystem {
	t.Helper()
	b := NewFilesystem(t.TempDir(), zerolog.Nop())
	b.now = func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) }
	return b
}

func TestEnsureDirectoryIsIdempotent(t *testing.T) {
	b := setupBackend(t)

	// Both calls must report success.
	if err := b.EnsureDirectory(); err != nil {
		t.Fatalf("First EnsureDirectory failed: %v", err)
	}
	if err := b.EnsureDirectory(); err != nil {
		t.Fatalf("Second EnsureDirectory failed: %v", err)
	}

	info, err := os.Stat(b.Dir())
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected backup directory to exist, err=%v", err)
	}
	if filepath.Base(filepath.Dir(b.Dir())) != "SpiritualReflections" {
		t.Errorf("Expected two-level 'SpiritualReflections/Backup' tree, got %s", b.Dir())
	}
}

func TestWriteSnapshotStampsDate(t *testing.T) {
	b := setupBackend(t)
	if err := b.EnsureDirectory(); err != nil {
		t.Fatalf("EnsureDirectory failed: %v", err)
	}

	name, err := b.WriteSnapshot("auto_backup.json", []byte(`{"meditations":[]}`))
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if name != "2025-07-01_auto_backup.json" {
		t.Errorf("Unexpected snapshot name %q", name)
	}

	data, err := b.ReadSnapshot(name)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if string(data) != `{"meditations":[]}` {
		t.Errorf("Snapshot contents mismatch: %q", data)
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	b := setupBackend(t)
	if err := b.EnsureDirectory(); err != nil {
		t.Fatalf("EnsureDirectory failed: %v", err)
	}

	days := []string{"2025-06-28", "2025-06-30", "2025-06-29"}
	for _, day := range days {
		d := day
		b.now = func() time.Time {
			parsed, _ := time.Parse("2006-01-02", d)
			return parsed
		}
		if _, err := b.WriteSnapshot("backup.json", []byte("{}")); err != nil {
			t.Fatalf("WriteSnapshot failed: %v", err)
		}
	}
	// A non-snapshot file must be ignored.
	if err := os.WriteFile(filepath.Join(b.Dir(), "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to plant non-snapshot file: %v", err)
	}

	snapshots, err := b.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}

	want := []string{"2025-06-30_backup.json", "2025-06-29_backup.json", "2025-06-28_backup.json"}
	if len(snapshots) != len(want) {
		t.Fatalf("Expected %d snapshots, got %d", len(want), len(snapshots))
	}
	for i, name := range want {
		if snapshots[i].Name != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, snapshots[i].Name)
		}
	}
}

func TestReadMissingSnapshot(t *testing.T) {
	b := setupBackend(t)
	if err := b.EnsureDirectory(); err != nil {
		t.Fatalf("EnsureDirectory failed: %v", err)
	}

	if _, err := b.ReadSnapshot("2025-01-01_missing.json"); err == nil {
		t.Errorf("Expected an error reading a missing snapshot")
	}
}

func TestAutoBackupCreatesDirectoryAndWrites(t *testing.T) {
	b := setupBackend(t)

	name, err := AutoBackup(b, []byte("{}"))
	if err != nil {
		t.Fatalf("AutoBackup failed: %v", err)
	}
	if name != "2025-07-01_auto_backup.json" {
		t.Errorf("Unexpected auto backup name %q", name)
	}
}

func TestUnavailableBackend(t *testing.T) {
	var b Backend = Unavailable{}

	if b.Available() {
		t.Errorf("Unavailable backend must report Available()=false")
	}
	if err := b.EnsureDirectory(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from EnsureDirectory, got %v", err)
	}
	if _, err := b.WriteSnapshot("x.json", nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from WriteSnapshot, got %v", err)
	}
	if _, err := b.ListSnapshots(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from ListSnapshots, got %v", err)
	}
	if _, err := b.ReadSnapshot("x.json"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from ReadSnapshot, got %v", err)
	}
}
