package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ubuntu/wslmanager"
)

func (a *app) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Unregister a distribution and delete its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !yes {
				ok, err := a.confirm(fmt.Sprintf("Delete %s? All of its data will be lost.", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := a.manager.Delete(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (a *app) newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a distribution",
		Long: "Rename a distribution by exporting it, importing it under the new name " +
			"and unregistering the original.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.manager.Rename(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s.\n", args[0], args[1])
			return nil
		},
	}
}

func (a *app) newInstallCmd() *cobra.Command {
	var customName string

	cmd := &cobra.Command{
		Use:   "install NAME",
		Short: "Install a distribution from the online catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := a.manager.Install(cmd.Context(), name, wslmanager.WithCustomName(customName)); err != nil {
				return err
			}

			if customName == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Installed %s.\n", name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Installed %s as %s.\n", name, customName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&customName, "name", "", "Register the distribution under this name")

	return cmd
}
