package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ubuntu/wslmanager"
)

func (a *app) newListCmd() *cobra.Command {
	var running, stopped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.manager.InstalledDistros(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case running:
				ds = wslmanager.RunningDistros(ds)
			case stopped:
				ds = wslmanager.StoppedDistros(ds)
			}

			if done, err := writeRecords(cmd.OutOrStdout(), a.output, ds); done {
				return err
			}
			return writeInstalledTable(cmd.OutOrStdout(), ds)
		},
	}

	cmd.Flags().BoolVar(&running, "running", false, "Only list running distributions")
	cmd.Flags().BoolVar(&stopped, "stopped", false, "Only list stopped distributions")
	cmd.MarkFlagsMutuallyExclusive("running", "stopped")

	return cmd
}

func (a *app) newOnlineCmd() *cobra.Command {
	var search string
	var ubuntu, enterprise, commands bool

	cmd := &cobra.Command{
		Use:   "online",
		Short: "List distributions available for installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.manager.OnlineDistros(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case search != "":
				ds = wslmanager.SearchOnline(ds, search)
			case ubuntu:
				ds = wslmanager.UbuntuDistros(ds)
			case enterprise:
				ds = wslmanager.EnterpriseDistros(ds)
			}

			if commands {
				cmds := wslmanager.InstallCommands(ds)
				if done, err := writeValue(cmd.OutOrStdout(), a.output, cmds); done {
					return err
				}
				for _, c := range cmds {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			}

			if done, err := writeRecords(cmd.OutOrStdout(), a.output, ds); done {
				return err
			}
			return writeOnlineTable(cmd.OutOrStdout(), ds)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only list distributions whose name contains this text")
	cmd.Flags().BoolVar(&ubuntu, "ubuntu", false, "Only list Ubuntu distributions")
	cmd.Flags().BoolVar(&enterprise, "enterprise", false, "Only list enterprise distributions")
	cmd.Flags().BoolVar(&commands, "commands", false, "Print the command installing each distribution")
	cmd.MarkFlagsMutuallyExclusive("search", "ubuntu", "enterprise")

	return cmd
}
