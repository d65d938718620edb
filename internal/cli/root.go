// Package cli implements the milkchain command, a terminal front end over
// the session core. It only branches on the discriminated results the
// session manager returns; no session logic lives here.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the root command for the milkchain CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "milkchain",
		Short:         "MilkChain client session tool",
		Long:          "Drives the MilkChain session lifecycle: register, login, PIN unlock, and logout against a MilkChain API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ~/.milkchain/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newUnlockCommand(opts))
	cmd.AddCommand(newSimulateCommand(opts))

	return cmd
}
