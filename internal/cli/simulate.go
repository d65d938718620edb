package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milkchain/milkchain/internal/lifecycle"
)

// simulate-foreground demonstrates the re-entry cycle inside one process:
// restore, unlock, background, foreground, and the gate re-locking.
func newSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "simulate-foreground",
		Short: "Walk the background/foreground re-lock cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()

			if !a.sessions.CheckAuth(cmd.Context()) {
				return errors.New("no stored session, sign in first")
			}
			fmt.Fprintf(out, "restored session, gate is %s\n", a.gate.State())

			if !a.gate.VerifyPin(cmd.Context(), pin) {
				return errors.New("PIN rejected")
			}
			fmt.Fprintf(out, "after unlock, gate is %s\n", a.gate.State())

			a.lifecycle.SetState(lifecycle.StateBackground)
			a.lifecycle.SetState(lifecycle.StateActive)
			fmt.Fprintf(out, "after returning to foreground, gate is %s\n", a.gate.State())

			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "re-entry PIN")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}
