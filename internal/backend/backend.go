// Package backend defines what a back-end to wslmanager must be able to do
// in order to run, or otherwise mock, wsl.exe.
package backend

import (
	"context"
)

// Result is the outcome of a single wsl.exe invocation. A non-zero ExitCode
// is not an error at this level: the back-end never interprets the output.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Backend defines what a back-end to wslmanager must be able to do or mock.
type Backend interface {
	// Execute runs wsl.exe with the provided arguments and captures its output.
	// It only returns an error when the process could not be run at all.
	Execute(ctx context.Context, args ...string) (Result, error)
}
