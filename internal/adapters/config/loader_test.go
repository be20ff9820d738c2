package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/config"
	"go.trai.ch/stamp/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stamp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeConfig(t, `
version: "1"
base_dir: /srv/assets
assets:
  site-css:
    include: [css, shared/reset.css]
    work_dir: /srv/built/site-css
    output: site.css
    checksum_length: 16
    lock_wait_seconds: 30
    fingerprint_max_age_seconds: 60
    persist: true
  site-js:
    include: [js]
    output: site.js
`)

	assets, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	// Sorted by name for deterministic iteration.
	css, js := assets[0], assets[1]
	assert.Equal(t, "site-css", css.Name)
	assert.Equal(t, "site-js", js.Name)

	assert.Equal(t, []string{"css", "shared/reset.css"}, css.Includes)
	assert.Equal(t, "/srv/assets", css.BaseDir)
	assert.Equal(t, "/srv/built/site-css", css.WorkDir)
	assert.Equal(t, 16, css.ChecksumLength)
	assert.Equal(t, 30*time.Second, css.LockWait)
	assert.Equal(t, time.Minute, css.MaxFingerprintAge)
	assert.True(t, css.Persist)
}

func TestLoader_Load_Defaults(t *testing.T) {
	path := writeConfig(t, `
assets:
  app:
    include: [src]
    output: app.js
`)

	assets, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, assets, 1)

	app := assets[0]
	assert.Equal(t, domain.DefaultChecksumLength, app.ChecksumLength)
	assert.Equal(t, domain.DefaultLockWait, app.LockWait)
	assert.Zero(t, app.MaxFingerprintAge)
	assert.False(t, app.Persist)
	assert.Equal(t, filepath.Join(".stamp", "app"), app.WorkDir)
	// base_dir falls back to the config file's directory.
	assert.Equal(t, filepath.Dir(path), app.BaseDir)
}

func TestLoader_Load_EmptyIncludeSet(t *testing.T) {
	path := writeConfig(t, `
assets:
  broken:
    output: broken.css
`)

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyIncludeSet))
}

func TestLoader_Load_ChecksumLengthOutOfRange(t *testing.T) {
	path := writeConfig(t, `
assets:
  broken:
    include: [css]
    output: broken.css
    checksum_length: 3
`)

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChecksumLength))
}

func TestLoader_Load_NoAssets(t *testing.T) {
	path := writeConfig(t, `version: "1"`)

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "assets: [")

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
}
