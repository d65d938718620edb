package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milkchain/milkchain/internal/api"
	"github.com/milkchain/milkchain/internal/session"
)

func newRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var input api.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a MilkChain account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			res := a.sessions.Register(cmd.Context(), input)
			switch res.Outcome {
			case session.OutcomePending:
				fmt.Fprintf(cmd.OutOrStdout(), "account created for %s\n", res.User.Phone)
				fmt.Fprintf(cmd.OutOrStdout(), "onboarding fee due: %d (%s)\n", res.Fee, res.Message)
				return nil
			case session.OutcomeSuccess:
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			default:
				return errors.New(res.Message)
			}
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "full name")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "password")
	cmd.Flags().StringVar(&input.PIN, "pin", "", "4-digit re-entry PIN")
	cmd.Flags().StringVar(&input.Role, "role", "farmer", "account role")
	cmd.Flags().StringVar(&input.County, "county", "", "county")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}
