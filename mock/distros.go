package mock

import (
	"fmt"
	"slices"
)

// AddDistro registers a distro directly, bypassing wsl.exe. The first distro
// added becomes the default one.
func (b *Backend) AddDistro(name, state, version string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.register(&distro{name: name, state: state, version: version})
}

// SetDefault mocks the behaviour of `wsl.exe --set-default <distro>`.
func (b *Backend) SetDefault(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.find(name) == nil {
		return fmt.Errorf("distro %q is not registered", name)
	}
	b.defaultDistro = name
	return nil
}

// SetCatalog replaces the list of distros available online.
func (b *Backend) SetCatalog(entries []CatalogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.catalog = slices.Clone(entries)
}

// IsRegistered returns whether a distro is registered, including the ones
// that are still finishing their installation.
func (b *Backend) IsRegistered(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.find(name) != nil
}

// Registered returns the names of the registered distros in registration order.
func (b *Backend) Registered() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.distros))
	for _, d := range b.distros {
		names = append(names, d.name)
	}
	return names
}

// Location returns the directory a distro was imported into. Distros
// installed from the store have no location.
func (b *Backend) Location(name string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.find(name)
	if d == nil {
		return "", false
	}
	return d.location, true
}

// Default returns the name of the default distro, empty if there is none.
func (b *Backend) Default() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.defaultDistro
}
