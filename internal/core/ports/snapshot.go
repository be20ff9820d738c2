package ports

// Snapshotter produces the cheap, first-tier staleness signal: a
// concatenation of modification times. Comparing two snapshots is an O(n)
// string comparison, no hashing.
//
//go:generate go run go.uber.org/mock/mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks
type Snapshotter interface {
	// Snapshot joins each file's mtime in list order with a fixed
	// delimiter. Two snapshots are equal iff membership, order and every
	// mtime are unchanged.
	Snapshot(files []string) string

	// Mtime returns a file's modification time in unix nanoseconds, or
	// zero when the file does not exist.
	Mtime(path string) int64
}
