package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-addigy"
)

func addPageFlags(cmd *cobra.Command, page *addigy.PageOptions) {
	cmd.Flags().IntVar(&page.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&page.PerPage, "per-page", 10, "items per page")
}

// NewAlertsCommand creates the alerts command.
func NewAlertsCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		status string
		page   addigy.PageOptions
	)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List alerts",
		Example: `  # Unattended alerts, second page
  addigy alerts --status Unattended --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := addigy.AlertStatus(status)
			if s != "" && !s.Valid() {
				return errors.Errorf("invalid status %q (use Acknowledged, Resolved or Unattended)", status)
			}

			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			res, err := client.Alerts.List(cmd.Context(), s, &page)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, res)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	addPageFlags(cmd, &page)

	return cmd
}

// NewMaintenanceCommand creates the maintenance command.
func NewMaintenanceCommand(globalOpts *GlobalOptions) *cobra.Command {
	var page addigy.PageOptions

	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "List maintenance items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(globalOpts)
			if err != nil {
				return err
			}

			res, err := client.Maintenance.List(cmd.Context(), &page)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), globalOpts.Output, res)
		},
	}

	addPageFlags(cmd, &page)

	return cmd
}
