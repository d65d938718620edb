package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newUnlockCommand(rootOpts *RootOptions) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Verify the re-entry PIN for the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			if !a.sessions.CheckAuth(cmd.Context()) {
				return errors.New("no stored session, sign in first")
			}

			if !a.gate.VerifyPin(cmd.Context(), pin) {
				return errors.New("PIN rejected")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "unlocked, gate is %s\n", a.gate.State())
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "re-entry PIN")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}
