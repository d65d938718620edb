package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and PIN gate state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			if a.sessions.CheckAuth(cmd.Context()) {
				user, _ := a.sessions.Current()
				fmt.Fprintf(out, "session:  %s <%s> role=%s county=%s\n", user.Name, user.Email, user.Role, user.County)
				fmt.Fprintf(out, "pin gate: %s\n", a.gate.State())
			} else {
				fmt.Fprintln(out, "session:  none")
			}

			if pending, ok := a.sessions.PendingUser(cmd.Context()); ok {
				fmt.Fprintf(out, "pending:  %s awaiting onboarding payment\n", pending.Phone)
			}

			return nil
		},
	}
}
