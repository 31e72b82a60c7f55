package wslmanager

// This file contains the errors returned by wslmanager. All of them are
// pointer types meant to be matched with errors.As.

import (
	"fmt"
	"strings"
	"time"
)

// DecodeError is returned when command output is not valid UTF-16LE.
type DecodeError struct {
	// Offset is the byte offset of the first invalid code unit.
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-16LE at byte %d: %s", e.Offset, e.Reason)
}

// CommandOutputError is returned when the output of a wsl.exe command
// cannot be used, typically because it could not be decoded.
type CommandOutputError struct {
	Command string
	Err     error
}

func (e *CommandOutputError) Error() string {
	return fmt.Sprintf("unusable output from %q: %v", e.Command, e.Err)
}

func (e *CommandOutputError) Unwrap() error {
	return e.Err
}

// CommandFailedError is returned when wsl.exe exits with a non-zero code, or
// could not run at all.
type CommandFailedError struct {
	Command  string
	Step     Step
	ExitCode int

	// Stderr is the decoded error output, verbatim. wsl.exe often reports
	// errors on stdout, in which case that is used instead.
	Stderr string

	// Err is set when wsl.exe could not be started or was interrupted, with
	// ExitCode -1.
	Err error
}

func (e *CommandFailedError) Error() string {
	var prefix string
	if e.Step != "" {
		prefix = fmt.Sprintf("step %s: ", e.Step)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s%q could not run: %v", prefix, e.Command, e.Err)
	}

	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "no error output"
	}
	return fmt.Sprintf("%s%q exited with code %d: %s", prefix, e.Command, e.ExitCode, msg)
}

func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a distro name does not follow the naming policy.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid distro name %q: %s", e.Name, e.Reason)
}

// NotFoundError is returned when a distro does not exist where it is expected.
type NotFoundError struct {
	Name string
	// Catalog is "installed" or "online".
	Catalog string
}

func (e *NotFoundError) Error() string {
	if e.Catalog == catalogOnline {
		return fmt.Sprintf("distro %q not found in available distributions", e.Name)
	}
	return fmt.Sprintf("distro %q not found", e.Name)
}

// ConflictError is returned when a distro name that must be free is already taken.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("distro %q already exists", e.Name)
}

// TimeoutError is returned when a freshly installed distro did not show up
// in the installed list in time.
type TimeoutError struct {
	Name   string
	Waited time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("distro %q was not listed after waiting %s", e.Name, e.Waited)
}

// RollbackError reports the outcome of the compensating action run after a
// workflow failed past the import step.
type RollbackError struct {
	// Err is the failure that triggered the rollback.
	Err error
	// Removed is the distro that was unregistered to compensate.
	Removed string
	// RollbackErr is non-nil when the compensation itself failed.
	RollbackErr error
}

func (e *RollbackError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("%v (rollback of %q failed too: %v)", e.Err, e.Removed, e.RollbackErr)
	}
	return fmt.Sprintf("%v (rolled back: %q was unregistered)", e.Err, e.Removed)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}

const (
	catalogInstalled = "installed"
	catalogOnline    = "online"
)
