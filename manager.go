package wslmanager

// This file contains the Manager and its options.

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ubuntu/wslmanager/internal/backend"
	"github.com/ubuntu/wslmanager/internal/backend/windows"
)

// Manager lists and manages WSL distros through wsl.exe.
//
// A Manager has no state of its own beyond its settings: every operation
// queries wsl.exe afresh. It is safe to use from several goroutines, but
// concurrent workflows on the same distro must be serialized by the caller
// unless a lock directory is set with WithLockDir.
type Manager struct {
	backend        backend.Backend
	log            logrus.FieldLogger
	storageDir     string
	tempDir        string
	settle         Settle
	rollback       bool
	commandTimeout time.Duration
	lockDir        string
	progress       func(Event)
}

type options struct {
	backend        backend.Backend
	log            logrus.FieldLogger
	storageDir     string
	tempDir        string
	settle         Settle
	rollback       bool
	commandTimeout time.Duration
	lockDir        string
	progress       func(Event)
}

// Option is an optional setting of a Manager.
type Option func(*options)

// WithBackend selects the back-end used to run wsl.exe. The default runs the
// real executable.
func WithBackend(b backend.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets the logger workflow steps are reported to. The default is
// the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithStorageDir makes imported distros live in <dir>/<name> instead of the
// per-user package directory.
func WithStorageDir(dir string) Option {
	return func(o *options) {
		o.storageDir = dir
	}
}

// WithTempDir sets where export archives are written. The default is the
// system temporary directory.
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}

// WithSettle sets how an install under a custom name waits for the installer
// to finish. See SettleFixed and SettlePoll.
func WithSettle(s Settle) Option {
	return func(o *options) {
		o.settle = s
	}
}

// WithRollback makes workflows unregister the distro they imported when a
// later step fails. It is disabled by default, leaving both distros
// registered for the user to sort out.
func WithRollback(enabled bool) Option {
	return func(o *options) {
		o.rollback = enabled
	}
}

// WithCommandTimeout bounds the run time of every wsl.exe call. Zero, the
// default, means no limit.
func WithCommandTimeout(d time.Duration) Option {
	return func(o *options) {
		o.commandTimeout = d
	}
}

// WithLockDir makes mutating operations hold an inter-process lock on every
// distro they touch. The lock files are stored in dir.
func WithLockDir(dir string) Option {
	return func(o *options) {
		o.lockDir = dir
	}
}

// WithProgress registers a callback that is notified of every workflow step
// and state change. It is called synchronously.
func WithProgress(f func(Event)) Option {
	return func(o *options) {
		o.progress = f
	}
}

// New creates a Manager.
func New(opts ...Option) *Manager {
	o := options{
		backend: windows.Backend{},
		log:     logrus.StandardLogger(),
		tempDir: os.TempDir(),
		settle:  SettleFixed(DefaultSettleDelay),
	}

	for _, f := range opts {
		f(&o)
	}

	return &Manager{
		backend:        o.backend,
		log:            o.log,
		storageDir:     o.storageDir,
		tempDir:        o.tempDir,
		settle:         o.settle,
		rollback:       o.rollback,
		commandTimeout: o.commandTimeout,
		lockDir:        o.lockDir,
		progress:       o.progress,
	}
}
