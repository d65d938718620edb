package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milkchain/milkchain/internal/session"
)

func newLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		email    string
		phone    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email or phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email != "" && phone != "" {
				return errors.New("use either --email or --phone, not both")
			}

			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			identifier, method := email, session.MethodEmail
			if phone != "" {
				identifier, method = phone, session.MethodPhone
			}

			res := a.sessions.Login(cmd.Context(), identifier, password, method)
			switch res.Outcome {
			case session.OutcomeSuccess:
				fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", res.User.Name, res.User.Role)
				fmt.Fprintln(cmd.OutOrStdout(), "PIN unlock required before use: milkchain unlock --pin <code>")
				return nil
			case session.OutcomePending:
				fmt.Fprintf(cmd.OutOrStdout(), "account pending: %s\n", res.Message)
				return nil
			default:
				return errors.New(res.Message)
			}
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&phone, "phone", "", "account phone number")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			a.sessions.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}
