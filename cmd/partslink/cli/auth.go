package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the CRM backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.User.Name, sess.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and clear local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session()
			if err != nil {
				return fail(cmd, err)
			}
			user := sess.User
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s", user.Name, user.Email, user.Role)
			if user.BranchCode != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " branch=%s", user.BranchCode)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
