package wslmanager

// This file contains the operations that install, rename and delete distros.

import (
	"context"
	"fmt"
	"strings"

	"github.com/ubuntu/decorate"
)

// validateName enforces the naming policy of distros created by wslmanager:
// non-empty, ASCII letters, digits, hyphens and underscores only.
func validateName(name string) error {
	if name == "" {
		return &ValidationError{Name: name, Reason: "name is empty"}
	}

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-', r == '_':
		default:
			return &ValidationError{Name: name, Reason: "only ASCII letters, digits, '-' and '_' are allowed"}
		}
	}

	return nil
}

// Delete unregisters a distro, destroying its filesystem.
//
// It is analogous to
//
//	wsl.exe --unregister <name>
func (m *Manager) Delete(ctx context.Context, name string) (err error) {
	defer decorate.OnError(&err, "could not delete distro %q", name)

	release, err := m.lock(name)
	if err != nil {
		return err
	}
	defer release()

	installed, err := m.InstalledDistros(ctx)
	if err != nil {
		return err
	}
	if _, ok := FindInstalled(installed, name); !ok {
		return &NotFoundError{Name: name, Catalog: catalogInstalled}
	}

	m.log.WithField("distro", name).Info("Unregistering distro")
	m.notify(Event{Distro: name, Step: StepUnregister})

	if _, err := m.run(ctx, StepUnregister, unregisterArgs(name)...); err != nil {
		m.notify(Event{Distro: name, Step: StepUnregister, Err: err})
		return err
	}

	return nil
}

// Rename gives a distro a new name. WSL cannot rename distros, so it is
// exported, imported under the new name and the original is unregistered.
//
// The new name is validated before anything else runs. If a step fails after
// the import, both distros stay registered unless rollback is enabled.
func (m *Manager) Rename(ctx context.Context, oldName, newName string) (err error) {
	defer decorate.OnError(&err, "could not rename distro %q to %q", oldName, newName)

	if err := validateName(newName); err != nil {
		return err
	}

	release, err := m.lock(oldName, newName)
	if err != nil {
		return err
	}
	defer release()

	installed, err := m.InstalledDistros(ctx)
	if err != nil {
		return err
	}
	if _, ok := FindInstalled(installed, oldName); !ok {
		return &NotFoundError{Name: oldName, Catalog: catalogInstalled}
	}
	if _, ok := FindInstalled(installed, newName); ok {
		return &ConflictError{Name: newName}
	}

	return m.newTransfer(oldName, newName).run(ctx)
}

type installOptions struct {
	customName string
}

// InstallOption is an optional setting of Install.
type InstallOption func(*installOptions)

// WithCustomName installs the distro under another name. A blank name is
// ignored.
func WithCustomName(name string) InstallOption {
	return func(o *installOptions) {
		o.customName = name
	}
}

// Install installs a distro from the online catalog.
//
// Without options it is analogous to
//
//	wsl.exe --install <name>
//
// With a custom name, the distro is installed without launching it, then
// exported, imported under the custom name and the original is unregistered.
func (m *Manager) Install(ctx context.Context, name string, opts ...InstallOption) (err error) {
	var o installOptions
	for _, f := range opts {
		f(&o)
	}
	custom := strings.TrimSpace(o.customName)

	if custom == "" {
		defer decorate.OnError(&err, "could not install distro %q", name)
	} else {
		defer decorate.OnError(&err, "could not install distro %q as %q", name, custom)
		if err := validateName(custom); err != nil {
			return err
		}
	}

	online, err := m.OnlineDistros(ctx)
	if err != nil {
		return err
	}
	d, ok := FindOnline(online, name)
	if !ok {
		return &NotFoundError{Name: name, Catalog: catalogOnline}
	}
	// The catalog has the spelling the distro will be registered under.
	name = d.Name

	if custom == "" {
		return m.installDefault(ctx, name)
	}
	return m.installCustom(ctx, name, custom)
}

// InstallDefault installs a distro under its catalog name.
func (m *Manager) InstallDefault(ctx context.Context, name string) error {
	return m.Install(ctx, name)
}

// InstallWithCustomName installs a distro under customName, which must follow
// the naming policy.
func (m *Manager) InstallWithCustomName(ctx context.Context, name, customName string) error {
	if strings.TrimSpace(customName) == "" {
		return fmt.Errorf("could not install distro %q: %w", name, &ValidationError{Name: customName, Reason: "name is empty"})
	}
	return m.Install(ctx, name, WithCustomName(customName))
}

func (m *Manager) installDefault(ctx context.Context, name string) error {
	release, err := m.lock(name)
	if err != nil {
		return err
	}
	defer release()

	m.log.WithField("distro", name).Info("Installing distro")
	m.notify(Event{Distro: name, Step: StepInstall})

	if _, err := m.run(ctx, StepInstall, installArgs(name, false)...); err != nil {
		m.notify(Event{Distro: name, Step: StepInstall, Err: err})
		return err
	}
	return nil
}

func (m *Manager) installCustom(ctx context.Context, name, custom string) error {
	release, err := m.lock(name, custom)
	if err != nil {
		return err
	}
	defer release()

	installed, err := m.InstalledDistros(ctx)
	if err != nil {
		return err
	}
	if _, ok := FindInstalled(installed, custom); ok {
		return &ConflictError{Name: custom}
	}
	// The workflow ends by unregistering name, which must not be a distro
	// the user already had.
	if _, ok := FindInstalled(installed, name); ok {
		return &ConflictError{Name: name}
	}

	log := m.log.WithField("distro", name)

	log.Info("Installing distro without launching it")
	m.notify(Event{Distro: name, Step: StepInstall})
	if _, err := m.run(ctx, StepInstall, installArgs(name, true)...); err != nil {
		m.notify(Event{Distro: name, Step: StepInstall, Err: err})
		return err
	}

	log.Infof("Waiting for the installation to settle (%s)", m.settle)
	m.notify(Event{Distro: name, Step: StepSettle})
	if err := m.waitInstalled(ctx, name); err != nil {
		m.notify(Event{Distro: name, Step: StepSettle, Err: err})
		return err
	}

	return m.newTransfer(name, custom).run(ctx)
}
