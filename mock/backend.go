// Package mock mocks wsl.exe, useful for tests as it allows parallelism,
// decoupling, and execution speed.
//
// The mock keeps an in-memory table of registered distros and an online
// catalog, and answers each supported subcommand with UTF-16LE output laid
// out the same way wsl.exe does.
package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/ubuntu/decorate"
	"github.com/ubuntu/wslmanager/internal/backend"
)

// Backend implements the Backend interface.
type Backend struct {
	distros       []*distro
	defaultDistro string
	catalog       []CatalogEntry
	calls         [][]string

	// pending holds freshly installed distros that are not listed yet,
	// with the number of listings left before they show up.
	pending map[string]int

	// Error injectors. These all have the form of:
	//
	// NameOfTheSubcommandError
	//
	// Their effect is to make the relevant subcommand exit with a non-zero code
	// and an error message in stderr, as wsl.exe would.
	ListError       bool
	ListOnlineError bool
	InstallError    bool
	ExportError     bool
	ImportError     bool
	UnregisterError bool

	// ExecuteError makes Execute fail as if wsl.exe could not be started.
	ExecuteError bool

	// CorruptOutput makes the listing subcommands print bytes that are not
	// valid UTF-16LE.
	CorruptOutput bool

	// InstallLatency is the number of `wsl -l -v` calls during which a distro
	// installed with --no-launch is still hidden, mimicking the background
	// setup of the real installer.
	InstallLatency int

	mu sync.Mutex
}

// distro is a registered distro as wsl.exe sees it.
type distro struct {
	guid    uuid.UUID
	name    string
	state   string
	version string

	// location is the import directory, empty for store installs.
	location string
}

// CatalogEntry is a distro available for installation.
type CatalogEntry struct {
	Name         string
	FriendlyName string
}

// DefaultCatalog is the list printed by `wsl --list --online` at the time of writing.
var DefaultCatalog = []CatalogEntry{
	{Name: "Ubuntu", FriendlyName: "Ubuntu"},
	{Name: "Debian", FriendlyName: "Debian GNU/Linux"},
	{Name: "kali-linux", FriendlyName: "Kali Linux Rolling"},
	{Name: "Ubuntu-18.04", FriendlyName: "Ubuntu 18.04 LTS"},
	{Name: "Ubuntu-20.04", FriendlyName: "Ubuntu 20.04 LTS"},
	{Name: "Ubuntu-22.04", FriendlyName: "Ubuntu 22.04 LTS"},
	{Name: "Ubuntu-24.04", FriendlyName: "Ubuntu 24.04 LTS"},
	{Name: "OracleLinux_7_9", FriendlyName: "Oracle Linux 7.9"},
	{Name: "OracleLinux_8_7", FriendlyName: "Oracle Linux 8.7"},
	{Name: "OracleLinux_9_1", FriendlyName: "Oracle Linux 9.1"},
	{Name: "openSUSE-Leap-15.6", FriendlyName: "openSUSE Leap 15.6"},
	{Name: "SUSE-Linux-Enterprise-15-SP5", FriendlyName: "SUSE Linux Enterprise 15 SP5"},
	{Name: "openSUSE-Tumbleweed", FriendlyName: "openSUSE Tumbleweed"},
}

// New constructs a new mocked back-end for wsl.exe, with no distros
// registered and the default online catalog.
func New() *Backend {
	return &Backend{
		catalog: slices.Clone(DefaultCatalog),
		pending: make(map[string]int),
	}
}

// Execute dispatches the arguments to the mocked subcommand and records the call.
func (b *Backend) Execute(ctx context.Context, args ...string) (res backend.Result, err error) {
	defer decorate.OnError(&err, "mock: wsl.exe %v", args)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, slices.Clone(args))

	if b.ExecuteError {
		return res, Error{}
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	return b.dispatch(args), nil
}

// ResetErrors sets all the error flags to false.
func (b *Backend) ResetErrors() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ListError = false
	b.ListOnlineError = false
	b.InstallError = false
	b.ExportError = false
	b.ImportError = false
	b.UnregisterError = false
	b.ExecuteError = false
	b.CorruptOutput = false
}

// Calls returns a copy of every argument vector received so far, in order.
func (b *Backend) Calls() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([][]string, 0, len(b.calls))
	for _, c := range b.calls {
		out = append(out, slices.Clone(c))
	}
	return out
}

// ResetCalls forgets the recorded calls.
func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = nil
}

// Error is an error triggered by the mock, and not a real problem.
type Error struct{}

func (err Error) Error() string {
	return "error triggered by mock"
}
