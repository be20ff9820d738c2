package producer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/producer"
)

func TestConcat_Write(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	b := filepath.Join(dir, "b.css")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("y"), 0o600))

	var buf bytes.Buffer
	require.NoError(t, producer.NewConcat().Write(&buf, []string{a, b}))
	assert.Equal(t, "xy", buf.String())
}

func TestConcat_Write_MissingInput(t *testing.T) {
	var buf bytes.Buffer
	err := producer.NewConcat().Write(&buf, []string{filepath.Join(t.TempDir(), "gone.css")})
	require.Error(t, err)
}

func TestConcat_Write_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, producer.NewConcat().Write(&buf, nil))
	assert.Zero(t, buf.Len())
}
