package wslmanager

// This file contains the workflow that moves a distro to a new name through
// export, import and unregister.

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ubuntu/wslmanager/internal/lock"
	"github.com/ubuntu/wslmanager/internal/state"
)

// Step names one action of an operation. Failures are tagged with the step
// that was running.
type Step string

// The steps of every operation.
const (
	StepList          Step = "list"
	StepListOnline    Step = "list-online"
	StepInstall       Step = "install"
	StepSettle        Step = "settle"
	StepTempFile      Step = "temp-file"
	StepExport        Step = "export"
	StepPrepareImport Step = "prepare-import"
	StepImport        Step = "import"
	StepUnregister    Step = "unregister"
	StepRollback      Step = "rollback"
)

// Event reports the progress of an operation.
type Event struct {
	// Distro is the distro the operation acts upon.
	Distro string
	Step   Step
	// State is the state of the workflow, such as "Exported". It is empty
	// for operations that are a single command.
	State string
	// Err is set when the step failed.
	Err error
}

// transfer is one run of export, import and unregister, moving source to target.
type transfer struct {
	m       *Manager
	source  string
	target  string
	machine state.Machine
	log     logrus.FieldLogger
}

func (m *Manager) newTransfer(source, target string) *transfer {
	return &transfer{
		m:      m,
		source: source,
		target: target,
		log:    m.log.WithFields(logrus.Fields{"distro": source, "target": target}),
	}
}

// run moves the distro. The export archive is removed whatever the outcome.
func (t *transfer) run(ctx context.Context) (err error) {
	t.step(StepTempFile)
	archive, err := t.m.newArchive()
	if err != nil {
		return t.fail(StepTempFile, fmt.Errorf("step %s: could not create export archive: %w", StepTempFile, err))
	}
	defer t.m.removeArchive(archive)

	t.step(StepExport)
	if _, err := t.m.run(ctx, StepExport, exportArgs(t.source, archive)...); err != nil {
		return t.fail(StepExport, err)
	}
	if err := t.advance(); err != nil {
		return err
	}

	t.step(StepPrepareImport)
	dir, err := t.m.prepareImportDir(t.target)
	if err != nil {
		return t.fail(StepPrepareImport, fmt.Errorf("step %s: could not create import directory: %w", StepPrepareImport, err))
	}

	t.step(StepImport)
	if _, err := t.m.run(ctx, StepImport, importArgs(t.target, dir, archive)...); err != nil {
		return t.fail(StepImport, err)
	}
	if err := t.advance(); err != nil {
		return err
	}

	t.step(StepUnregister)
	if _, err := t.m.run(ctx, StepUnregister, unregisterArgs(t.source)...); err != nil {
		return t.rollback(ctx, t.fail(StepUnregister, err))
	}
	if err := t.advance(); err != nil {
		return err
	}

	// OriginalRemoved -> Done
	if err := t.advance(); err != nil {
		return err
	}
	t.log.Info("Distro moved")

	return nil
}

// rollback unregisters the imported distro after a failure, when enabled.
// Without it, both distros stay registered.
func (t *transfer) rollback(ctx context.Context, cause error) error {
	if !t.m.rollback {
		t.log.Warningf("Both %q and %q are registered now", t.source, t.target)
		return cause
	}

	t.step(StepRollback)
	_, err := t.m.run(ctx, StepRollback, unregisterArgs(t.target)...)
	if err != nil {
		t.log.Errorf("Could not roll back the import of %q: %v", t.target, err)
	}

	return &RollbackError{Err: cause, Removed: t.target, RollbackErr: err}
}

func (t *transfer) advance() error {
	s, err := t.machine.Advance()
	if err != nil {
		return err
	}
	t.log.WithField("state", s).Debug("Workflow state changed")
	t.m.notify(Event{Distro: t.source, State: s.String()})
	return nil
}

func (t *transfer) step(s Step) {
	t.log.WithField("step", s).Info("Running workflow step")
	t.m.notify(Event{Distro: t.source, Step: s, State: t.machine.Current().String()})
}

// fail moves the workflow to Failed and returns err.
func (t *transfer) fail(s Step, err error) error {
	from, ferr := t.machine.Fail()
	if ferr != nil {
		return fmt.Errorf("%w (and %v)", err, ferr)
	}
	t.log.WithFields(logrus.Fields{"step": s, "state": from}).Errorf("Workflow failed: %v", err)
	t.m.notify(Event{Distro: t.source, Step: s, State: t.machine.Current().String(), Err: err})
	return err
}

// notify sends an event to the progress callback, if any.
func (m *Manager) notify(e Event) {
	if m.progress == nil {
		return
	}
	m.progress(e)
}

// lock takes the inter-process lock of every name, when a lock directory is
// set. The returned function releases them.
func (m *Manager) lock(names ...string) (release func(), err error) {
	if m.lockDir == "" {
		return func() {}, nil
	}

	d, err := lock.New(m.lockDir)
	if err != nil {
		return nil, err
	}
	return d.Acquire(names...)
}
