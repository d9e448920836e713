package app

import (
	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command.
//
// It signs in with the admin credentials and prints the resulting session, so
// scripts can reuse the token with other tools.
func NewLoginCommand(globalOpts *GlobalOptions) *cobra.Command {
	var orgID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Addigy console",
		Example: `  # Sign in to the admin account's own organization
  addigy login

  # Sign in and switch to a managed organization
  addigy login --org 6b9c2f1e`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			session, err := newSession(cmd, client, orgID)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, session)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization to impersonate after signing in")

	return cmd
}
