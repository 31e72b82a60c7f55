package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ubuntu/decorate"
	"github.com/ubuntu/wslmanager"
	"golang.org/x/sync/errgroup"
)

// snapshot fetches both distro lists at once.
func (a *app) snapshot(ctx context.Context) (wslmanager.Snapshot, error) {
	var installed []wslmanager.InstalledDistro
	var online []wslmanager.OnlineDistro

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		installed, err = a.manager.InstalledDistros(ctx)
		return err
	})
	g.Go(func() (err error) {
		online, err = a.manager.OnlineDistros(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return wslmanager.Snapshot{}, err
	}

	return wslmanager.NewSnapshot(installed, online), nil
}

func (a *app) newExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export both distribution lists and their summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			var out []byte
			if a.output == outputYAML {
				out, err = s.YAML()
			} else {
				out, err = s.JSON()
			}
			if err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}

			if file == "" {
				return writeOut(cmd.OutOrStdout(), out)
			}

			if err := writeFile(file, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of the standard output")

	return cmd
}

func (a *app) newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count installed and available distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			if done, err := writeValue(cmd.OutOrStdout(), a.output, s.Summary); done {
				return err
			}

			def := wslmanager.SummarizeInstalled(s.Installed).DefaultName

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Installed:\t%d\n", s.Summary.TotalInstalled)
			fmt.Fprintf(tw, "Running:\t%d\n", s.Summary.Running)
			fmt.Fprintf(tw, "Stopped:\t%d\n", s.Summary.Stopped)
			fmt.Fprintf(tw, "Default:\t%s\n", def)
			fmt.Fprintf(tw, "Available:\t%d\n", s.Summary.TotalAvailable)
			fmt.Fprintf(tw, "Ubuntu:\t%d\n", s.Summary.UbuntuAvailable)
			fmt.Fprintf(tw, "Enterprise:\t%d\n", s.Summary.EnterpriseAvailable)
			return tw.Flush()
		},
	}
}

// writeFile writes out to path, including the error from closing the file.
func writeFile(path string, out []byte) (err error) {
	defer decorate.OnError(&err, "could not write %s", path)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return writeOut(f, out)
}
