package wslmanager_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	wsl "github.com/ubuntu/wslmanager"
	"github.com/ubuntu/wslmanager/internal/backend"
	"github.com/ubuntu/wslmanager/mock"
	"golang.org/x/text/encoding/unicode"
)

// testEnv is a manager backed by a fresh mock, with its own directories.
type testEnv struct {
	manager    *wsl.Manager
	backend    *mock.Backend
	tempDir    string
	storageDir string
	events     *[]wsl.Event
}

// newTestEnv creates a manager on top of a mock without any distro
// registered. Extra options are applied after the test defaults.
func newTestEnv(t *testing.T, opts ...wsl.Option) testEnv {
	t.Helper()

	return newTestEnvWith(t, mock.New(), opts...)
}

// newTestEnvWith is newTestEnv with a custom back-end, typically a wrapper
// around a mock.
func newTestEnvWith(t *testing.T, b backend.Backend, opts ...wsl.Option) testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	env := testEnv{
		tempDir:    t.TempDir(),
		storageDir: t.TempDir(),
		events:     &[]wsl.Event{},
	}
	if m, ok := b.(*mock.Backend); ok {
		env.backend = m
	}

	defaults := []wsl.Option{
		wsl.WithBackend(b),
		wsl.WithLogger(logger),
		wsl.WithTempDir(env.tempDir),
		wsl.WithStorageDir(env.storageDir),
		wsl.WithSettle(wsl.SettleFixed(0)),
		wsl.WithProgress(func(e wsl.Event) {
			*env.events = append(*env.events, e)
		}),
	}

	env.manager = wsl.New(append(defaults, opts...)...)
	return env
}

// requireNoArchiveLeft fails if any export archive is still in the temp dir.
func (env testEnv) requireNoArchiveLeft(t *testing.T) {
	t.Helper()

	entries, err := os.ReadDir(env.tempDir)
	require.NoError(t, err, "Setup: could not read temporary directory")
	require.Empty(t, entries, "Export archive should have been removed")
}

// states returns the workflow states reported by state-change events, in order.
func (env testEnv) states() []string {
	var out []string
	for _, e := range *env.events {
		if e.Step == "" && e.State != "" {
			out = append(out, e.State)
		}
	}
	return out
}

// failUnregister wraps a mock so that unregistering one distro fails while
// every other command behaves normally.
type failUnregister struct {
	*mock.Backend
	name string
}

func (b failUnregister) Execute(ctx context.Context, args ...string) (backend.Result, error) {
	if len(args) == 2 && args[0] == "--unregister" && args[1] == b.name {
		return backend.Result{ExitCode: 1, Stderr: []byte("Error code: Wsl/Service/UnregisterDistro/E_ACCESSDENIED")}, nil
	}
	return b.Backend.Execute(ctx, args...)
}

// failSubcommand wraps a mock so that one subcommand cannot run. Execute
// returns err for it or, when err is nil, blocks until the context is done.
type failSubcommand struct {
	*mock.Backend
	subcommand string
	err        error
}

func (b failSubcommand) Execute(ctx context.Context, args ...string) (backend.Result, error) {
	if len(args) == 0 || args[0] != b.subcommand {
		return b.Backend.Execute(ctx, args...)
	}
	if b.err != nil {
		return backend.Result{}, b.err
	}
	<-ctx.Done()
	return backend.Result{}, ctx.Err()
}

// utf16le encodes text the way wsl.exe prints it.
func utf16le(t *testing.T, s string) []byte {
	t.Helper()

	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(s)
	require.NoError(t, err, "Setup: could not encode test input")
	return []byte(out)
}

// commands returns the subcommand of every recorded call.
func commands(calls [][]string) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		if len(c) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, c[0])
	}
	return out
}
