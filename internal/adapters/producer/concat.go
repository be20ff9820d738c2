// Package producer contains build producers: the collaborators that turn
// a resolved file list into artifact bytes.
package producer

import (
	"io"
	"os"

	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Producer = (*Concat)(nil)

// Concat is the default producer: it concatenates the input files in list
// order. Minifying producers plug in through the same interface.
type Concat struct{}

// NewConcat creates a new Concat producer.
func NewConcat() *Concat {
	return &Concat{}
}

// Write streams every input file into w in order.
func (c *Concat) Write(w io.Writer, files []string) error {
	for _, path := range files {
		if err := appendFile(w, path); err != nil {
			return err
		}
	}
	return nil
}

func appendFile(w io.Writer, path string) error {
	file, err := os.Open(path) //nolint:gosec // Path comes from the resolved include list
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open input file"), "path", path)
	}
	defer file.Close() //nolint:errcheck // Read-only handle

	if _, err := io.Copy(w, file); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy input file"), "path", path)
	}
	return nil
}
