package ports

// Fingerprinter computes the authoritative content checksum and manages
// its on-disk representation.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	// Fingerprint streams the bytes of every existing file in the list,
	// followed by the artifact, through a single hash accumulator and
	// returns the hex digest truncated to length characters. Files that
	// vanished between listing and hashing are silently skipped.
	Fingerprint(files []string, artifact string, length int) (string, error)

	// Save writes the checksum as the sole content of the fingerprint
	// file at path.
	Save(path, fingerprint string) error

	// Load reads a previously saved checksum. It returns "" without an
	// error when the file does not exist.
	Load(path string) (string, error)
}
