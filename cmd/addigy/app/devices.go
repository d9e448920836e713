package app

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewDevicesCommand creates the devices command.
func NewDevicesCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		online   bool
		policyID string
	)

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List devices",
		Example: `  # All devices
  addigy devices

  # Devices currently online
  addigy devices --online

  # Devices assigned to a policy
  addigy devices --policy 2f6d1c4a`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if online && policyID != "" {
				return errors.New("--online and --policy cannot be combined")
			}

			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			var res json.RawMessage
			switch {
			case online:
				res, err = client.Devices.ListOnline(cmd.Context())
			case policyID != "":
				res, err = client.Policies.Devices(cmd.Context(), policyID)
			default:
				res, err = client.Devices.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, res)
		},
	}

	cmd.Flags().BoolVar(&online, "online", false, "only list online devices")
	cmd.Flags().StringVar(&policyID, "policy", "", "only list devices in this policy")

	return cmd
}
