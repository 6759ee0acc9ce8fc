// Package backup writes timestamped JSON snapshots of the journal collections
// to device storage and restores from them. The backend is selected once at
// startup: a filesystem variant when a writable root is available, and an
// unavailable variant that reports every operation as unsupported.
package backup

import (
	"errors"
	"time"
)

// ErrUnavailable is returned by every operation of the Unavailable backend.
var ErrUnavailable = errors.New("local backup is not available on this platform")

// SnapshotInfo describes a stored snapshot file.
type SnapshotInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Backend is the device storage adapter. Callers check Available before
// invoking write/list/read.
type Backend interface {
	// Available reports whether this backend can perform backups at all.
	Available() bool
	// EnsureDirectory creates the backup directory tree if absent.
	// Calling it when the tree already exists is a success, not an error.
	EnsureDirectory() error
	// WriteSnapshot stamps the current date onto basename and writes data.
	// It returns the full snapshot filename.
	WriteSnapshot(basename string, data []byte) (string, error)
	// ListSnapshots lists snapshot files newest-first (the date-stamp prefix
	// makes reverse-lexicographic order approximate recency).
	ListSnapshots() ([]SnapshotInfo, error)
	// ReadSnapshot returns the raw contents of a stored snapshot.
	ReadSnapshot(name string) ([]byte, error)
}

// AutoBackupBasename is the filename used by automatic snapshots.
const AutoBackupBasename = "auto_backup.json"

// AutoBackup ensures the directory exists and writes an automatic snapshot.
func AutoBackup(b Backend, data []byte) (string, error) {
	if err := b.EnsureDirectory(); err != nil {
		return "", err
	}
	return b.WriteSnapshot(AutoBackupBasename, data)
}

// Unavailable is the backend used on platforms without writable storage.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) EnsureDirectory() error { return ErrUnavailable }

func (Unavailable) WriteSnapshot(string, []byte) (string, error) { return "", ErrUnavailable }

func (Unavailable) ListSnapshots() ([]SnapshotInfo, error) { return nil, ErrUnavailable }

func (Unavailable) ReadSnapshot(string) ([]byte, error) { return nil, ErrUnavailable }
