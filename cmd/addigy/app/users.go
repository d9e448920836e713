package app

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command. Users live behind the console
// API, so every subcommand signs in first.
func NewUsersCommand(globalOpts *GlobalOptions) *cobra.Command {
	var orgID string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect console users",
	}

	cmd.PersistentFlags().StringVar(&orgID, "org", "", "organization to impersonate")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List console users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient(globalOpts)
				if err != nil {
					return err
				}
				session, err := newSession(cmd, client, orgID)
				if err != nil {
					return err
				}

				users, err := client.Users.List(cmd.Context(), session)
				if err != nil {
					return err
				}

				out := make([]json.RawMessage, 0, len(users))
				for _, u := range users {
					out = append(out, u.Raw)
				}
				return writeOutput(cmd.OutOrStdout(), globalOpts.Output, out)
			},
		},
		&cobra.Command{
			Use:   "find <email>",
			Short: "Find a console user by email (case-sensitive)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient(globalOpts)
				if err != nil {
					return err
				}
				session, err := newSession(cmd, client, orgID)
				if err != nil {
					return err
				}

				user, err := client.Users.Find(cmd.Context(), session, args[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), globalOpts.Output, user.Raw)
			},
		},
	)

	return cmd
}
