package mock

// This file mocks the wsl.exe subcommands used by wslmanager.

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/ubuntu/wslmanager/internal/backend"
	"golang.org/x/text/encoding/unicode"
)

// exitFailure is the exit code of every failed subcommand. The real wsl.exe
// exits with -1, which os/exec reports as 4294967295 on 64-bit Windows.
// Callers only rely on it being non-zero.
const exitFailure = 1

// dispatch must be called with the mutex held.
func (b *Backend) dispatch(args []string) backend.Result {
	switch {
	case slices.Equal(args, []string{"-l", "-v"}), slices.Equal(args, []string{"--list", "--verbose"}):
		return b.list()
	case slices.Equal(args, []string{"--list", "--online"}), slices.Equal(args, []string{"-l", "-o"}):
		return b.listOnline()
	case len(args) >= 2 && args[0] == "--install":
		return b.install(args[1], slices.Contains(args[2:], "--no-launch"))
	case len(args) == 3 && args[0] == "--export":
		return b.export(args[1], args[2])
	case len(args) == 4 && args[0] == "--import":
		return b.importDistro(args[1], args[2], args[3])
	case len(args) == 2 && args[0] == "--unregister":
		return b.unregister(args[1])
	}

	return failure("Invalid command line argument: %s\r\nPlease use 'wsl.exe --help' to get a list of supported arguments.", strings.Join(args, " "))
}

// list mocks `wsl.exe -l -v`.
func (b *Backend) list() backend.Result {
	if b.ListError {
		return failure("Error code: Wsl/Service/E_UNEXPECTED")
	}
	if b.CorruptOutput {
		return backend.Result{Stdout: []byte{0x20, 0x00, 0x4e}}
	}

	b.tickPending()

	visible := b.visibleDistros()
	if len(visible) == 0 {
		// No distros: wsl.exe complains on stdout and fails.
		return backend.Result{
			ExitCode: exitFailure,
			Stdout: encode("Windows Subsystem for Linux has no installed distributions.\r\n" +
				"Error code: Wsl/WSL_E_DEFAULT_DISTRO_NOT_FOUND\r\n"),
		}
	}

	width := len("NAME")
	for _, d := range visible {
		width = max(width, len(d.name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "  %-*s    %-15s %s\r\n", width, "NAME", "STATE", "VERSION")
	for _, d := range visible {
		marker := " "
		if d.name == b.defaultDistro {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %-*s    %-15s %s\r\n", marker, width, d.name, d.state, d.version)
	}

	return backend.Result{Stdout: encode(sb.String())}
}

// listOnline mocks `wsl.exe --list --online`.
func (b *Backend) listOnline() backend.Result {
	if b.ListOnlineError {
		return failure("Failed to fetch the list distribution from 'https://raw.githubusercontent.com/microsoft/WSL/master/distributions/DistributionInfo.json'.\r\nError code: Wsl/WININET_E_NAME_NOT_RESOLVED")
	}
	if b.CorruptOutput {
		return backend.Result{Stdout: []byte{0x00, 0xdc, 0x41, 0x00}}
	}

	width := 32
	for _, e := range b.catalog {
		width = max(width, len(e.Name)+1)
	}

	var sb strings.Builder
	sb.WriteString("The following is a list of valid distributions that can be installed.\r\n")
	sb.WriteString("Install using 'wsl.exe --install <Distro>'.\r\n")
	sb.WriteString("\r\n")
	fmt.Fprintf(&sb, "%-*s%s\r\n", width, "NAME", "FRIENDLY NAME")
	for _, e := range b.catalog {
		fmt.Fprintf(&sb, "%-*s%s\r\n", width, e.Name, e.FriendlyName)
	}

	return backend.Result{Stdout: encode(sb.String())}
}

// install mocks `wsl.exe --install <name> [--no-launch]`.
func (b *Backend) install(name string, noLaunch bool) backend.Result {
	if b.InstallError {
		return failure("Error code: Wsl/InstallDistro/E_UNEXPECTED")
	}

	idx := slices.IndexFunc(b.catalog, func(e CatalogEntry) bool {
		return strings.EqualFold(e.Name, name)
	})
	if idx < 0 {
		return failure("Invalid distribution name: '%s'.\r\nTo get a list of valid distributions, use 'wsl.exe --list --online'.", name)
	}
	name = b.catalog[idx].Name

	if b.find(name) != nil {
		return failure("A distribution with the supplied name already exists.\r\nError code: Wsl/InstallDistro/ERROR_ALREADY_EXISTS")
	}

	state := "Running"
	if noLaunch {
		state = "Stopped"
	}
	b.register(&distro{name: name, state: state, version: "2"})

	if noLaunch && b.InstallLatency > 0 {
		b.pending[name] = b.InstallLatency
	}

	return backend.Result{Stdout: encode(fmt.Sprintf("Installing: %s\r\n%s has been installed.\r\n", b.catalog[idx].FriendlyName, b.catalog[idx].FriendlyName))}
}

// export mocks `wsl.exe --export <name> <path>` by writing a fake tarball.
func (b *Backend) export(name, path string) backend.Result {
	if b.ExportError {
		return failure("Export in progress, this may take a few minutes.\r\nError code: Wsl/Service/Export/E_FAIL")
	}

	d := b.find(name)
	if d == nil || b.isPending(name) {
		return failure("There is no distribution with the supplied name.\r\nError code: Wsl/Service/WSL_E_DISTRO_NOT_FOUND")
	}

	if err := os.WriteFile(path, []byte(fmt.Sprintf("rootfs of %s (%s)\n", d.name, d.guid)), 0600); err != nil {
		return failure("Error code: Wsl/Service/Export/%v", err)
	}

	return backend.Result{Stdout: encode("Export in progress, this may take a few minutes.\r\nThe operation completed successfully.\r\n")}
}

// importDistro mocks `wsl.exe --import <name> <dir> <path>`.
func (b *Backend) importDistro(name, dir, path string) backend.Result {
	if b.ImportError {
		return failure("Import in progress, this may take a few minutes.\r\nError code: Wsl/Service/RegisterDistro/E_FAIL")
	}

	if b.find(name) != nil {
		return failure("A distribution with the supplied name already exists.\r\nError code: Wsl/Service/RegisterDistro/ERROR_ALREADY_EXISTS")
	}

	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return failure("The system cannot find the path specified.\r\nError code: Wsl/Service/RegisterDistro/ERROR_PATH_NOT_FOUND")
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return failure("The system cannot find the file specified.\r\nError code: Wsl/Service/RegisterDistro/ERROR_FILE_NOT_FOUND")
	}

	b.register(&distro{name: name, state: "Stopped", version: "2", location: dir})

	return backend.Result{Stdout: encode("Import in progress, this may take a few minutes.\r\nThe operation completed successfully.\r\n")}
}

// unregister mocks `wsl.exe --unregister <name>`.
func (b *Backend) unregister(name string) backend.Result {
	if b.UnregisterError {
		return failure("Unregistering.\r\nError code: Wsl/Service/UnregisterDistro/E_ACCESSDENIED")
	}

	idx := slices.IndexFunc(b.distros, func(d *distro) bool { return d.name == name })
	if idx < 0 {
		return failure("There is no distribution with the supplied name.\r\nError code: Wsl/Service/WSL_E_DISTRO_NOT_FOUND")
	}

	b.distros = slices.Delete(b.distros, idx, idx+1)
	delete(b.pending, name)

	// Unregistering the default distro makes the first remaining one the default.
	if b.defaultDistro == name {
		b.defaultDistro = ""
		if len(b.distros) > 0 {
			b.defaultDistro = b.distros[0].name
		}
	}

	return backend.Result{Stdout: encode("Unregistering.\r\nThe operation completed successfully.\r\n")}
}

// register must be called with the mutex held.
func (b *Backend) register(d *distro) {
	d.guid = uuid.New()
	b.distros = append(b.distros, d)

	// When registering the first distro, it becomes the default.
	if b.defaultDistro == "" {
		b.defaultDistro = d.name
	}
}

func (b *Backend) find(name string) *distro {
	for _, d := range b.distros {
		if d.name == name {
			return d
		}
	}
	return nil
}

func (b *Backend) isPending(name string) bool {
	_, ok := b.pending[name]
	return ok
}

// tickPending makes freshly installed distros one listing closer to showing up.
func (b *Backend) tickPending() {
	for name, left := range b.pending {
		if left <= 1 {
			delete(b.pending, name)
			continue
		}
		b.pending[name] = left - 1
	}
}

func (b *Backend) visibleDistros() []*distro {
	var out []*distro
	for _, d := range b.distros {
		if b.isPending(d.name) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// failure builds the result of a failed wsl.exe call.
func failure(format string, args ...any) backend.Result {
	return backend.Result{
		ExitCode: exitFailure,
		Stderr:   encode(fmt.Sprintf(format, args...) + "\r\n"),
	}
}

// encode converts text to UTF-16LE without BOM, the encoding of wsl.exe's console output.
func encode(s string) []byte {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(s)
	if err != nil {
		panic(fmt.Sprintf("could not encode %q as UTF-16: %v", s, err))
	}
	return []byte(out)
}
