package wslmanager

// This file contains pure lookups and filters over parsed records.
// None of them perform I/O.

import (
	"fmt"
	"strings"
)

// Keywords that identify an enterprise distro by name or friendly name.
var enterpriseKeywords = []string{"enterprise", "oracle", "suse"}

// FindInstalled returns the distro with exactly the given name.
func FindInstalled(distros []InstalledDistro, name string) (InstalledDistro, bool) {
	for _, d := range distros {
		if d.Name == name {
			return d, true
		}
	}
	return InstalledDistro{}, false
}

// FindOnline returns the distro with the given name, ignoring case.
func FindOnline(distros []OnlineDistro, name string) (OnlineDistro, bool) {
	for _, d := range distros {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return OnlineDistro{}, false
}

// DefaultDistro returns the first distro marked as default.
func DefaultDistro(distros []InstalledDistro) (InstalledDistro, bool) {
	for _, d := range distros {
		if d.IsDefault {
			return d, true
		}
	}
	return InstalledDistro{}, false
}

// RunningDistros returns the distros whose state is "Running", ignoring case.
func RunningDistros(distros []InstalledDistro) []InstalledDistro {
	return withState(distros, "running")
}

// StoppedDistros returns the distros whose state is "Stopped", ignoring case.
func StoppedDistros(distros []InstalledDistro) []InstalledDistro {
	return withState(distros, "stopped")
}

func withState(distros []InstalledDistro, state string) []InstalledDistro {
	out := []InstalledDistro{}
	for _, d := range distros {
		if strings.EqualFold(d.State, state) {
			out = append(out, d)
		}
	}
	return out
}

// SearchOnline returns the distros whose name or friendly name contains the
// term, ignoring case. Order is preserved.
func SearchOnline(distros []OnlineDistro, term string) []OnlineDistro {
	return matchingAny(distros, []string{term})
}

// UbuntuDistros returns the Ubuntu distros available online.
func UbuntuDistros(distros []OnlineDistro) []OnlineDistro {
	return SearchOnline(distros, "ubuntu")
}

// EnterpriseDistros returns the enterprise distros available online (SUSE, Oracle, etc.).
func EnterpriseDistros(distros []OnlineDistro) []OnlineDistro {
	return matchingAny(distros, enterpriseKeywords)
}

// matchingAny keeps each distro at most once, if any term matches.
func matchingAny(distros []OnlineDistro, terms []string) []OnlineDistro {
	out := []OnlineDistro{}
	for _, d := range distros {
		name := strings.ToLower(d.Name)
		friendly := strings.ToLower(d.FriendlyName)
		for _, term := range terms {
			term = strings.ToLower(term)
			if strings.Contains(name, term) || strings.Contains(friendly, term) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// InstallCommands returns the wsl.exe command line that installs each distro.
func InstallCommands(distros []OnlineDistro) []string {
	cmds := make([]string, 0, len(distros))
	for _, d := range distros {
		cmds = append(cmds, fmt.Sprintf("wsl --install %s", d.Name))
	}
	return cmds
}
