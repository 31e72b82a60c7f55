// Package lock provides inter-process locks keyed by distro name, so that two
// wslmanager processes never run workflows on the same distro at once.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alexflint/go-filemutex"
	"github.com/google/uuid"
	"github.com/ubuntu/decorate"
)

// Dir hands out file locks stored in a directory.
type Dir struct {
	path string
}

// New returns a lock directory rooted at path, creating it if needed.
func New(path string) (d Dir, err error) {
	defer decorate.OnError(&err, "could not create lock directory %q", path)

	if err := os.MkdirAll(path, 0700); err != nil {
		return d, err
	}
	return Dir{path: path}, nil
}

// Acquire blocks until it holds the lock of every distro name given. Names
// sharing a lock file are locked once, and files are locked in sorted order
// so that concurrent callers cannot deadlock. The returned function releases
// all of them.
func (d Dir) Acquire(names ...string) (release func(), err error) {
	defer decorate.OnError(&err, "could not lock %s", strings.Join(names, ", "))

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, key(name))
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	var held []*filemutex.FileMutex
	release = func() {
		for i := len(held) - 1; i >= 0; i-- {
			_ = held[i].Unlock()
			_ = held[i].Close()
		}
	}

	for _, k := range keys {
		m, err := filemutex.New(d.file(k))
		if err != nil {
			release()
			return nil, err
		}
		if err := m.Lock(); err != nil {
			_ = m.Close()
			release()
			return nil, fmt.Errorf("%s: %v", k, err)
		}
		held = append(held, m)
	}

	return release, nil
}

// TryAcquire is like Acquire for a single name, but fails instead of blocking
// when another process holds the lock.
func (d Dir) TryAcquire(name string) (release func(), err error) {
	defer decorate.OnError(&err, "could not lock %s", name)

	m, err := filemutex.New(d.file(key(name)))
	if err != nil {
		return nil, err
	}
	if err := m.TryLock(); err != nil {
		_ = m.Close()
		return nil, err
	}

	return func() {
		_ = m.Unlock()
		_ = m.Close()
	}, nil
}

// file returns the path of the lock file for a key.
func (d Dir) file(k string) string {
	return filepath.Join(d.path, k+".lock")
}

// key maps a distro name to the base name of its lock file. Distro names are
// case-insensitive on Windows, so are the locks. Names that are not safe as a
// file name are hashed so that the lock file stays inside the directory.
func key(name string) string {
	k := strings.ToLower(name)
	if k != "" && !strings.ContainsFunc(k, unsafeRune) {
		return k
	}
	return "h-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(k)).String()
}

func unsafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		return false
	}
	return true
}
