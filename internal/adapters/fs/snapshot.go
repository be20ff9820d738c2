package fs

import (
	"os"
	"strconv"
	"strings"

	"go.trai.ch/stamp/internal/core/ports"
)

// snapshotSeparator joins per-file mtimes into a single comparable string.
const snapshotSeparator = ";"

// missingMarker is the snapshot contribution of a file that vanished
// between listing and stat.
const missingMarker = "-"

var _ ports.Snapshotter = (*Snapshotter)(nil)

// Snapshotter implements the first-tier staleness signal with stat calls
// only.
type Snapshotter struct{}

// NewSnapshotter creates a new Snapshotter.
func NewSnapshotter() *Snapshotter {
	return &Snapshotter{}
}

// Snapshot concatenates each file's mtime in list order. Comparing two
// snapshots is an O(n) string comparison, which is why this runs on every
// request while the content checksum does not.
func (s *Snapshotter) Snapshot(files []string) string {
	parts := make([]string, len(files))
	for i, file := range files {
		parts[i] = missingMarker
		if info, err := os.Stat(file); err == nil {
			parts[i] = strconv.FormatInt(info.ModTime().UnixNano(), 10)
		}
	}
	return strings.Join(parts, snapshotSeparator)
}

// Mtime returns the file's modification time in unix nanoseconds, or zero
// when the file does not exist.
func (s *Snapshotter) Mtime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}
