package app

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewSoftwareCommand creates the software command and its subcommands.
func NewSoftwareCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "software",
		Short: "Inspect the software catalog",
	}

	cmd.AddCommand(
		newSoftwarePublicCommand(globalOpts),
		newSoftwareCustomCommand(globalOpts),
	)

	return cmd
}

func newSoftwarePublicCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "public",
		Short: "List the public software catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			res, err := client.Software.Public(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, res)
		},
	}
}

func newSoftwareCustomCommand(globalOpts *GlobalOptions) *cobra.Command {
	var identifier string

	cmd := &cobra.Command{
		Use:   "custom",
		Short: "List custom software",
		Example: `  # All custom software
  addigy software custom

  # Every version of one item
  addigy software custom --identifier acrobat-reader`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			var res json.RawMessage
			if identifier != "" {
				res, err = client.Software.CustomVersions(cmd.Context(), identifier)
			} else {
				res, err = client.Software.Custom(cmd.Context())
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, res)
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "list versions of this identifier")

	return cmd
}
