package wslmanager

// This file contains where workflows put their files on disk.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	packagePrefix = "CanonicalGroupLimited."
	packageSuffix = "_79rhkp1fndgsc"
)

// importDir returns the directory a distro named name is imported into.
func (m *Manager) importDir(name string) string {
	if m.storageDir != "" {
		return filepath.Join(m.storageDir, name)
	}

	return filepath.Join(localAppData(), "Packages", packagePrefix+name+packageSuffix, "LocalState")
}

// localAppData returns %LOCALAPPDATA%, or its usual value when unset.
func localAppData() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir
	}
	return filepath.Join(`C:\Users`, os.Getenv("USERNAME"), "AppData", "Local")
}

// prepareImportDir creates the import directory of a distro.
func (m *Manager) prepareImportDir(name string) (string, error) {
	dir := m.importDir(name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// newArchive reserves a uniquely named file for an export archive. Removing
// it is the caller's responsibility.
func (m *Manager) newArchive() (string, error) {
	path := filepath.Join(m.tempDir, fmt.Sprintf("wslmanager-%s.tar", uuid.New()))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}

// removeArchive deletes an export archive. Failures are only logged, as they
// must not hide the outcome of the workflow.
func (m *Manager) removeArchive(path string) {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		m.log.WithField("archive", path).Debug("Removed export archive")
		return
	}
	m.log.WithField("archive", path).Warningf("Could not remove export archive: %v", err)
}
