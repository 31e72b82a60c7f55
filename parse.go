package wslmanager

// This file contains the parsers for the tables printed by wsl.exe.

import (
	"strings"
	"unicode"
)

// Column boundaries of "wsl.exe -l -v" once the default marker is removed.
// They are used when a line cannot be split into three fields.
const (
	nameColumnStart    = 2
	stateColumnStart   = 18
	versionColumnStart = 34
)

// ParseInstalled parses the decoded output of "wsl.exe -l -v".
//
// Sample output:
//
//	  NAME            STATE           VERSION
//	* Ubuntu          Running         2
//	  Ubuntu-Preview  Stopped         2
//
// The first line is a header. A leading asterisk marks the default distro.
// Lines that do not yield a name, a state and a version are skipped.
// The returned slice is never nil and keeps the order of the output.
func ParseInstalled(text string) []InstalledDistro {
	distros := []InstalledDistro{}

	lines := splitLines(text)
	if len(lines) < 2 {
		return distros
	}

	// Skipping the header
	for _, line := range lines[1:] {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			continue
		}

		// Only the asterisk is removed: the space after it keeps the columns aligned.
		isDefault := strings.HasPrefix(line, "*")
		if isDefault {
			line = line[1:]
		}

		name, state, version := installedFields(line)
		if name == "" || state == "" || version == "" {
			continue
		}

		distros = append(distros, InstalledDistro{
			Name:      name,
			State:     state,
			Version:   version,
			IsDefault: isDefault,
		})
	}

	return distros
}

// installedFields extracts name, state and version from a line without its
// default marker. The name is the first field, state and version the last two.
func installedFields(line string) (name, state, version string) {
	fields := strings.Fields(line)
	if len(fields) >= 3 {
		return fields[0], fields[len(fields)-2], fields[len(fields)-1]
	}

	// Fall back to the fixed-width columns of the table.
	runes := []rune(line)
	name = column(runes, nameColumnStart, stateColumnStart)
	state = column(runes, stateColumnStart, versionColumnStart)
	version = column(runes, versionColumnStart, len(runes))
	return name, state, version
}

// column returns the trimmed runes in [from, to), clamped to the line length.
func column(runes []rune, from, to int) string {
	to = min(to, len(runes))
	if from >= to {
		return ""
	}
	return strings.TrimSpace(string(runes[from:to]))
}

// Banner lines that wsl.exe prints around the online table.
var onlineBannerPrefixes = []string{"The following", "Install using"}

// ParseOnline parses the decoded output of "wsl.exe --list --online".
//
// Sample output:
//
//	The following is a list of valid distributions that can be installed.
//	Install using 'wsl.exe --install <Distro>'.
//
//	NAME                            FRIENDLY NAME
//	Ubuntu                          Ubuntu
//	kali-linux                      Kali Linux Rolling
//
// Nothing is returned until the header line is found. The first field of a
// line is the name, the rest joined by single spaces is the friendly name.
// The returned slice is never nil and keeps the order of the output.
func ParseOnline(text string) []OnlineDistro {
	distros := []OnlineDistro{}

	var headerFound bool
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)

		if strings.Contains(line, "NAME") && strings.Contains(line, "FRIENDLY NAME") {
			headerFound = true
			continue
		}

		if line == "" || !headerFound {
			continue
		}

		if isOnlineBanner(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		distros = append(distros, OnlineDistro{
			Name:         fields[0],
			FriendlyName: strings.Join(fields[1:], " "),
		})
	}

	return distros
}

func isOnlineBanner(line string) bool {
	for _, prefix := range onlineBannerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// splitLines trims the text and splits it on any line ending.
func splitLines(text string) []string {
	text = strings.TrimSpace(normalizeNewlines(text))
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
