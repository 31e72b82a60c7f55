package wslmanager

// This file contains the wait between installing a distro and exporting it.

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultSettleDelay is the fixed wait used after "wsl.exe --install --no-launch".
	DefaultSettleDelay = 5 * time.Second

	// DefaultPollInterval replaces a non-positive polling interval.
	DefaultPollInterval = time.Second
)

type settleMode int

const (
	settleFixed settleMode = iota
	settlePoll
)

// Settle describes how to wait for the installer to finish setting up a
// distro in the background.
type Settle struct {
	mode     settleMode
	delay    time.Duration
	interval time.Duration
	timeout  time.Duration
}

// SettleFixed waits for a fixed delay, without checking anything.
func SettleFixed(delay time.Duration) Settle {
	return Settle{mode: settleFixed, delay: delay}
}

// SettlePoll lists the installed distros every interval until the new one
// shows up. It gives up with a *TimeoutError after timeout. A non-positive
// interval is replaced by DefaultPollInterval.
func SettlePoll(interval, timeout time.Duration) Settle {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return Settle{mode: settlePoll, interval: interval, timeout: timeout}
}

func (s Settle) String() string {
	if s.mode == settlePoll {
		return fmt.Sprintf("poll every %s for up to %s", s.interval, s.timeout)
	}
	return fmt.Sprintf("wait %s", s.delay)
}

// waitInstalled blocks until name is ready to be exported, as configured.
func (m *Manager) waitInstalled(ctx context.Context, name string) error {
	if m.settle.mode != settlePoll {
		return sleep(ctx, m.settle.delay)
	}

	start := time.Now()
	for {
		distros, err := m.InstalledDistros(ctx)
		if err != nil {
			return err
		}
		if _, ok := FindInstalled(distros, name); ok {
			return nil
		}

		waited := time.Since(start)
		if waited >= m.settle.timeout {
			return &TimeoutError{Name: name, Waited: waited}
		}

		if err := sleep(ctx, min(m.settle.interval, m.settle.timeout-waited)); err != nil {
			return err
		}
	}
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
