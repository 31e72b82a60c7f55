package wslmanager

// This file contains the wsl.exe invocations and the handling of their results.

import (
	"context"
	"errors"
	"strings"

	"github.com/ubuntu/decorate"
)

// noDistrosCode is printed by "wsl.exe -l -v" when nothing is installed.
const noDistrosCode = "WSL_E_DEFAULT_DISTRO_NOT_FOUND"

func listInstalledArgs() []string {
	return []string{"-l", "-v"}
}

func listOnlineArgs() []string {
	return []string{"--list", "--online"}
}

func installArgs(name string, noLaunch bool) []string {
	args := []string{"--install", name}
	if noLaunch {
		args = append(args, "--no-launch")
	}
	return args
}

func exportArgs(name, path string) []string {
	return []string{"--export", name, path}
}

func importArgs(name, dir, path string) []string {
	return []string{"--import", name, dir, path}
}

func unregisterArgs(name string) []string {
	return []string{"--unregister", name}
}

// commandLine renders an argument vector for error messages and logs.
func commandLine(args []string) string {
	return "wsl.exe " + strings.Join(args, " ")
}

// run executes wsl.exe and returns its stdout. A non-zero exit code, or a
// failure to run at all, is returned as a *CommandFailedError tagged with the
// step.
func (m *Manager) run(ctx context.Context, step Step, args ...string) ([]byte, error) {
	if m.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.commandTimeout)
		defer cancel()
	}

	m.log.WithField("step", step).Debugf("Running %s", commandLine(args))

	res, err := m.backend.Execute(ctx, args...)
	if err != nil {
		return nil, &CommandFailedError{
			Command:  commandLine(args),
			Step:     step,
			ExitCode: -1,
			Err:      err,
		}
	}

	if !res.Success() {
		msg := decodeMessage(res.Stderr)
		if strings.TrimSpace(msg) == "" {
			msg = decodeMessage(res.Stdout)
		}
		return nil, &CommandFailedError{
			Command:  commandLine(args),
			Step:     step,
			ExitCode: res.ExitCode,
			Stderr:   msg,
		}
	}

	return res.Stdout, nil
}

// runText is like run, but also decodes the output.
func (m *Manager) runText(ctx context.Context, step Step, args ...string) (string, error) {
	out, err := m.run(ctx, step, args...)
	if err != nil {
		return "", err
	}

	text, err := DecodeOutput(out)
	if err != nil {
		return "", &CommandOutputError{Command: commandLine(args), Err: err}
	}
	return text, nil
}

// InstalledDistros returns the distros registered in WSL, in the order
// wsl.exe lists them.
//
// It is analogous to
//
//	wsl.exe -l -v
func (m *Manager) InstalledDistros(ctx context.Context) (distros []InstalledDistro, err error) {
	defer decorate.OnError(&err, "could not list installed distros")

	text, err := m.runText(ctx, StepList, listInstalledArgs()...)

	var cmdErr *CommandFailedError
	if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stderr, noDistrosCode) {
		return []InstalledDistro{}, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseInstalled(text), nil
}

// OnlineDistros returns the distros available for installation.
//
// It is analogous to
//
//	wsl.exe --list --online
func (m *Manager) OnlineDistros(ctx context.Context) (distros []OnlineDistro, err error) {
	defer decorate.OnError(&err, "could not list online distros")

	text, err := m.runText(ctx, StepListOnline, listOnlineArgs()...)
	if err != nil {
		return nil, err
	}

	return ParseOnline(text), nil
}
