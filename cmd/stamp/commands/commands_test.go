package commands_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/cmd/stamp/commands"
	"go.trai.ch/stamp/internal/adapters/config"
	"go.trai.ch/stamp/internal/adapters/flock"
	"go.trai.ch/stamp/internal/adapters/fs"
	"go.trai.ch/stamp/internal/adapters/logger"
	"go.trai.ch/stamp/internal/adapters/producer"
	"go.trai.ch/stamp/internal/adapters/state"
	"go.trai.ch/stamp/internal/adapters/telemetry"
	"go.trai.ch/stamp/internal/app"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/stamp/internal/engine/orchestrator"
)

// newCLI wires a CLI against a real config file and real adapters in a
// temporary directory, returning the CLI, the config path and the source
// directory.
func newCLI(t *testing.T) (*commands.CLI, string, string) {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, "css")
	require.NoError(t, os.MkdirAll(src, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.css"), []byte("body{}"), 0o600))

	configPath := filepath.Join(dir, "stamp.yaml")
	content := fmt.Sprintf(`
assets:
  site-css:
    include: [css]
    work_dir: %s
    output: site.css
`, filepath.Join(dir, "work"))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	log, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	log.SetOutput(io.Discard)

	registry := orchestrator.NewRegistry(orchestrator.Factories{
		Resolver:      fs.NewResolver(fs.NewWalker()),
		Snapshotter:   fs.NewSnapshotter(),
		Fingerprinter: fs.NewFingerprinter(),
		Producer:      producer.NewConcat(),
		Logger:        log,
		Tracer:        telemetry.NewNoOpTracer(),
		NewLock:       func(path string) ports.BuildLock { return flock.New(path) },
		NewStore:      func(path string) ports.StateStore { return state.NewStore(path) },
	})

	return commands.New(app.New(config.NewLoader(), registry, log)), configPath, dir
}

func run(t *testing.T, cli *commands.CLI, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cli.SetOutput(&buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestBuildCommand(t *testing.T) {
	cli, configPath, dir := newCLI(t)

	_, err := run(t, cli, "--config", configPath, "build")
	require.NoError(t, err)

	artifact, err := os.ReadFile(filepath.Join(dir, "work", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(artifact))
}

func TestStatusCommand(t *testing.T) {
	cli, configPath, _ := newCLI(t)

	out, err := run(t, cli, "--config", configPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "site-css")
	assert.Contains(t, out, "(not built)")
	assert.Contains(t, out, "stale")

	_, err = run(t, cli, "--config", configPath, "build")
	require.NoError(t, err)

	out, err = run(t, cli, "--config", configPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "site-css")
	assert.NotContains(t, out, "(not built)")
	assert.Contains(t, out, "fresh")
}

func TestInvalidateCommand(t *testing.T) {
	cli, configPath, _ := newCLI(t)

	_, err := run(t, cli, "--config", configPath, "build")
	require.NoError(t, err)

	_, err = run(t, cli, "--config", configPath, "invalidate", "site-css")
	require.NoError(t, err)

	out, err := run(t, cli, "--config", configPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "stale")
}

func TestBuildCommand_UnknownAsset(t *testing.T) {
	cli, configPath, _ := newCLI(t)

	_, err := run(t, cli, "--config", configPath, "build", "site-img")
	require.Error(t, err)
}

func TestBuildCommand_MissingConfig(t *testing.T) {
	cli, _, dir := newCLI(t)

	_, err := run(t, cli, "--config", filepath.Join(dir, "absent.yaml"), "build")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	cli, _, _ := newCLI(t)

	out, err := run(t, cli, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stamp version")
}
