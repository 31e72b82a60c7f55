package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ubuntu/wslmanager"
	"gopkg.in/yaml.v3"
)

// writeRecords prints distros as JSON or YAML. It returns false for the
// table format, which each command prints its own way.
func writeRecords[T wslmanager.InstalledDistro | wslmanager.OnlineDistro](w io.Writer, format string, ds []T) (bool, error) {
	var out []byte
	var err error

	switch format {
	case outputJSON:
		out, err = wslmanager.ToJSON(ds)
	case outputYAML:
		out, err = wslmanager.ToYAML(ds)
	default:
		return false, nil
	}
	if err != nil {
		return true, fmt.Errorf("encode distros: %w", err)
	}

	return true, writeOut(w, out)
}

// writeValue prints any value as JSON or YAML. It returns false for the
// table format.
func writeValue(w io.Writer, format string, v any) (bool, error) {
	var out []byte
	var err error

	switch format {
	case outputJSON:
		out, err = json.MarshalIndent(v, "", "  ")
	case outputYAML:
		out, err = yaml.Marshal(v)
	default:
		return false, nil
	}
	if err != nil {
		return true, fmt.Errorf("encode output: %w", err)
	}

	return true, writeOut(w, out)
}

// writeOut prints out, making sure it ends with a newline.
func writeOut(w io.Writer, out []byte) error {
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err := w.Write(out)
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
}

func writeInstalledTable(w io.Writer, ds []wslmanager.InstalledDistro) error {
	if len(ds) == 0 {
		_, err := fmt.Fprintln(w, "No distributions found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tSTATE\tVERSION\tDEFAULT")
	for _, d := range ds {
		def := ""
		if d.IsDefault {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.State, d.Version, def)
	}
	return tw.Flush()
}

func writeOnlineTable(w io.Writer, ds []wslmanager.OnlineDistro) error {
	if len(ds) == 0 {
		_, err := fmt.Fprintln(w, "No distributions found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tFRIENDLY NAME")
	for _, d := range ds {
		fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.FriendlyName)
	}
	return tw.Flush()
}
