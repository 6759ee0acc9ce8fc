package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// The fixed two-level directory tree under the storage root.
const (
	appFolderName    = "SpiritualReflections"
	backupFolderName = "Backup"
)

// Filesystem stores snapshots under <root>/SpiritualReflections/Backup.
type Filesystem struct {
	root string
	log  zerolog.Logger
	now  func() time.Time
}

// NewFilesystem returns a backend rooted at root. The directory tree is not
// created until EnsureDirectory is called.
func NewFilesystem(root string, log zerolog.Logger) *Filesystem {
	return &Filesystem{root: root, log: log, now: time.Now}
}

func (f *Filesystem) Available() bool { return true }

// Dir returns the full backup directory path.
func (f *Filesystem) Dir() string {
	return filepath.Join(f.root, appFolderName, backupFolderName)
}

// EnsureDirectory creates the two-level tree if absent. An existing tree is
// treated as success.
func (f *Filesystem) EnsureDirectory() error {
	dir := f.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory '%s': %w", dir, err)
	}
	f.log.Debug().Str("dir", dir).Msg("backup directory ready")
	return nil
}

// WriteSnapshot prefixes basename with the current ISO date and writes data.
// A snapshot written twice the same day overwrites the earlier one.
func (f *Filesystem) WriteSnapshot(basename string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s", f.now().Format("2006-01-02"), basename)
	path := filepath.Join(f.Dir(), name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot '%s': %w", name, err)
	}

	f.log.Info().Str("snapshot", name).Int("bytes", len(data)).Msg("snapshot written")
	return name, nil
}

// ListSnapshots lists snapshot files in reverse-lexicographic order, which
// the date-stamp prefix turns into newest-first. Only .json files and
// extensionless names are considered snapshots.
func (f *Filesystem) ListSnapshots() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(f.Dir())
	if err != nil {
		return nil, fmt.Errorf("failed to list backup directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") && strings.Contains(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat snapshot '%s': %w", name, err)
		}
		snapshots = append(snapshots, SnapshotInfo{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})

	return snapshots, nil
}

// ReadSnapshot returns the raw contents of the named snapshot.
func (f *Filesystem) ReadSnapshot(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.Dir(), name))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot '%s': %w", name, err)
	}
	return data, nil
}
