package app

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/go-addigy"
)

// NewPoliciesCommand creates the policies command and its subcommands.
func NewPoliciesCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Inspect policies",
	}

	cmd.AddCommand(
		newPoliciesListCommand(globalOpts),
		newPoliciesShowCommand(globalOpts),
	)

	return cmd
}

func newPoliciesListCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			res, err := client.Policies.List(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, res)
		},
	}
}

func newPoliciesShowCommand(globalOpts *GlobalOptions) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "show <policy-id>",
		Short: "Show policy details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			res, err := client.Policies.Details(cmd.Context(), args[0], provider)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, res)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", addigy.DefaultInstructionProvider, "instruction provider")

	return cmd
}
