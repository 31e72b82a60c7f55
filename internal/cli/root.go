// Package cli implements the wslmanager command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ubuntu/wslmanager"
	"github.com/ubuntu/wslmanager/internal/config"
	"github.com/ubuntu/wslmanager/internal/state"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// app holds the state shared by every command.
type app struct {
	configPath string
	output     string
	verbose    bool

	// extraOptions are applied after the ones from the configuration.
	extraOptions []wslmanager.Option
	// confirm asks the user a yes/no question.
	confirm func(title string) (bool, error)

	log     *logrus.Logger
	manager *wslmanager.Manager
}

// Execute runs the root cobra command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd returns the wslmanager command, managing the real WSL installation.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{confirm: confirmWithForm})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "wslmanager",
		Short:             "List, install, rename and delete WSL distributions",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the configuration file")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "Output format: table, json or yaml")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every step")

	cmd.AddCommand(a.newListCmd())
	cmd.AddCommand(a.newOnlineCmd())
	cmd.AddCommand(a.newDeleteCmd())
	cmd.AddCommand(a.newRenameCmd())
	cmd.AddCommand(a.newInstallCmd())
	cmd.AddCommand(a.newExportCmd())
	cmd.AddCommand(a.newSummaryCmd())

	return cmd
}

// setup loads the configuration and builds the manager once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch a.output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(logrus.WarnLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	var cfg config.Config
	var err error
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	a.log.Debugf("Configuration: %+v", cfg)

	opts := cfg.Options()
	opts = append(opts,
		wslmanager.WithLogger(a.log),
		wslmanager.WithProgress(a.reportProgress(cmd)),
	)
	opts = append(opts, a.extraOptions...)

	a.manager = wslmanager.New(opts...)
	return nil
}

// reportProgress prints each step of a workflow to stderr, and the final
// state once the workflow ends.
func (a *app) reportProgress(cmd *cobra.Command) func(wslmanager.Event) {
	return func(e wslmanager.Event) {
		if e.Err != nil {
			return
		}

		if e.Step != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", e.Distro, e.Step)
			return
		}

		s, err := state.NewFromString(e.State)
		if err != nil {
			a.log.Debugf("Ignoring progress of %s: %v", e.Distro, err)
			return
		}
		a.log.Debugf("%s is now %s", e.Distro, s)
		if s.Terminal() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", e.Distro, strings.ToLower(s.String()))
		}
	}
}

// confirmWithForm asks a yes/no question in the terminal.
func confirmWithForm(title string) (bool, error) {
	var ok bool
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
