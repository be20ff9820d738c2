package fs

import (
	"crypto/sha1" //nolint:gosec // Fingerprint is a cache-busting token, not an integrity guarantee
	"encoding/hex"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"strings"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes the content checksum by streaming every input
// file plus the artifact through a single SHA-1 accumulator.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint hashes the bytes of every existing file in the list, then
// the artifact, and returns the hex digest truncated to length characters.
// A zero byte after each hashed file pins the file boundaries, so bytes
// shifting between adjacent files change the digest. Files missing at
// hash time are skipped: they may have been deleted between listing and
// hashing, and a collision caused by the skip only costs an extra
// rebuild.
func (f *Fingerprinter) Fingerprint(files []string, artifact string, length int) (string, error) {
	if length < domain.MinChecksumLength || length > domain.MaxChecksumLength {
		return "", zerr.With(zerr.Wrap(domain.ErrChecksumLength, "invalid fingerprint truncation"), "length", length)
	}

	hasher := sha1.New() //nolint:gosec // See type comment

	for _, file := range files {
		hashed, err := hashFile(hasher, file)
		if err != nil {
			return "", err
		}
		if hashed {
			_, _ = hasher.Write([]byte{0}) // Separator
		}
	}
	if _, err := hashFile(hasher, artifact); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil))[:length], nil
}

// hashFile streams one file into the accumulator, tolerating files that no
// longer exist or cannot be opened. It reports whether any bytes were
// contributed.
func hashFile(hasher io.Writer, path string) (bool, error) {
	file, err := os.Open(path) //nolint:gosec // Path comes from the resolved include list
	if err != nil {
		return false, nil
	}
	defer file.Close() //nolint:errcheck // Read-only handle

	if _, err := io.Copy(hasher, file); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return true, nil
}

// Save writes the checksum as the sole content of the fingerprint file.
func (f *Fingerprinter) Save(path, fingerprint string) error {
	if err := os.WriteFile(path, []byte(fingerprint), 0o644); err != nil { //nolint:gosec // Read by external serving logic
		return zerr.With(zerr.Wrap(err, "failed to save fingerprint"), "path", path)
	}
	return nil
}

// Load reads a previously saved checksum, returning "" when none exists.
func (f *Fingerprinter) Load(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is inside the asset work dir
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to load fingerprint"), "path", path)
	}
	return strings.TrimSpace(string(data)), nil
}
