// Package windows contains the production backend. It is the
// one used in production code, and spawns real wsl.exe processes.
//
// On Linux it still works from inside a WSL distro with interop enabled,
// where wsl.exe is reachable through the Windows path.
package windows

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/ubuntu/decorate"
	"github.com/ubuntu/wslmanager/internal/backend"
)

// DefaultExecutable is the name of the WSL command-line tool.
const DefaultExecutable = "wsl.exe"

// Backend implements the Backend interface.
type Backend struct {
	// Executable overrides the path to wsl.exe. Empty means DefaultExecutable.
	Executable string
}

// Execute runs wsl.exe with the given arguments without flashing a console window.
//
// It is analogous to
//
//	wsl.exe <args...>
func (b Backend) Execute(ctx context.Context, args ...string) (res backend.Result, err error) {
	exe := b.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	defer decorate.OnError(&err, "could not run %s %v", exe, args)

	//nolint:gosec // The arguments are built by wslmanager, never by a shell.
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.SysProcAttr = hiddenWindow()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	res = backend.Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, err
	}

	return res, nil
}
