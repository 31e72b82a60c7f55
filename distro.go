package wslmanager

// This file contains the records produced by parsing wsl.exe output.

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// InstalledDistro is a distro as shown in "wsl.exe -l -v".
// Records are snapshots: a later listing supersedes them.
type InstalledDistro struct {
	Name      string `json:"name" yaml:"name"`
	State     string `json:"state" yaml:"state"`
	Version   string `json:"version" yaml:"version"`
	IsDefault bool   `json:"is_default" yaml:"is_default"`
}

// String shows the distro the way "wsl.exe -l -v" would.
func (d InstalledDistro) String() string {
	marker := " "
	if d.IsDefault {
		marker = "*"
	}
	return fmt.Sprintf("%s %s (%s, WSL%s)", marker, d.Name, d.State, d.Version)
}

// OnlineDistro is a distro as shown in "wsl.exe --list --online".
type OnlineDistro struct {
	Name         string `json:"name" yaml:"name"`
	FriendlyName string `json:"friendly_name" yaml:"friendly_name"`
}

// String shows the distro as "Name (Friendly name)".
func (d OnlineDistro) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.FriendlyName)
}

// ToJSON serializes records as an indented JSON array. Field order is the
// declaration order of the record, and array order is the parse order.
// A nil slice is serialized as an empty array.
func ToJSON[T InstalledDistro | OnlineDistro](ds []T) ([]byte, error) {
	if ds == nil {
		ds = []T{}
	}
	return json.MarshalIndent(ds, "", "  ")
}

// ToYAML serializes records as a YAML sequence with the same keys and order as ToJSON.
func ToYAML[T InstalledDistro | OnlineDistro](ds []T) ([]byte, error) {
	if ds == nil {
		ds = []T{}
	}
	return yaml.Marshal(ds)
}
