package wslmanager

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// noDefault is shown as the default distro name when there is none.
const noDefault = "None"

// InstalledSummary counts the installed distros by state.
type InstalledSummary struct {
	Total       int    `json:"total" yaml:"total"`
	Running     int    `json:"running" yaml:"running"`
	Stopped     int    `json:"stopped" yaml:"stopped"`
	DefaultName string `json:"default_name" yaml:"default_name"`
}

// SummarizeInstalled counts the installed distros by state.
func SummarizeInstalled(distros []InstalledDistro) InstalledSummary {
	s := InstalledSummary{
		Total:       len(distros),
		Running:     len(RunningDistros(distros)),
		Stopped:     len(StoppedDistros(distros)),
		DefaultName: noDefault,
	}
	if d, ok := DefaultDistro(distros); ok {
		s.DefaultName = d.Name
	}
	return s
}

// OnlineSummary counts the distros available online by category.
type OnlineSummary struct {
	Total      int `json:"total" yaml:"total"`
	Ubuntu     int `json:"ubuntu" yaml:"ubuntu"`
	Enterprise int `json:"enterprise" yaml:"enterprise"`
}

// SummarizeOnline counts the distros available online by category.
func SummarizeOnline(distros []OnlineDistro) OnlineSummary {
	return OnlineSummary{
		Total:      len(distros),
		Ubuntu:     len(UbuntuDistros(distros)),
		Enterprise: len(EnterpriseDistros(distros)),
	}
}

// Snapshot gathers both listings and their counts, for exporting.
type Snapshot struct {
	Installed []InstalledDistro `json:"installed_distributions" yaml:"installed_distributions"`
	Available []OnlineDistro    `json:"available_distributions" yaml:"available_distributions"`
	Summary   SnapshotSummary   `json:"summary" yaml:"summary"`
}

// SnapshotSummary holds the counts of a Snapshot.
type SnapshotSummary struct {
	TotalInstalled      int `json:"total_installed" yaml:"total_installed"`
	Running             int `json:"running" yaml:"running"`
	Stopped             int `json:"stopped" yaml:"stopped"`
	TotalAvailable      int `json:"total_available" yaml:"total_available"`
	UbuntuAvailable     int `json:"ubuntu_available" yaml:"ubuntu_available"`
	EnterpriseAvailable int `json:"enterprise_available" yaml:"enterprise_available"`
}

// NewSnapshot builds a snapshot out of two listings.
func NewSnapshot(installed []InstalledDistro, available []OnlineDistro) Snapshot {
	if installed == nil {
		installed = []InstalledDistro{}
	}
	if available == nil {
		available = []OnlineDistro{}
	}

	is := SummarizeInstalled(installed)
	os := SummarizeOnline(available)

	return Snapshot{
		Installed: installed,
		Available: available,
		Summary: SnapshotSummary{
			TotalInstalled:      is.Total,
			Running:             is.Running,
			Stopped:             is.Stopped,
			TotalAvailable:      os.Total,
			UbuntuAvailable:     os.Ubuntu,
			EnterpriseAvailable: os.Enterprise,
		},
	}
}

// JSON serializes the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// YAML serializes the snapshot as YAML.
func (s Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
