// Package app implements the addigy command-line interface.
//
// Commands are built with cobra and share a GlobalOptions value that carries
// the config path, output format and logger.
package app

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-addigy"
	"github.com/tphakala/go-addigy/internal/config"
)

const cliName = "addigy"

// GlobalOptions holds options that are common to all commands.
type GlobalOptions struct {
	// ConfigPath overrides the config file location.
	ConfigPath string

	// Output selects the output format: json or yaml.
	Output string

	// Verbose enables debug logging.
	Verbose bool

	Logger *logrus.Logger
}

// NewAddigyCommand creates the root command with all subcommands.
func NewAddigyCommand() *cobra.Command {
	opts := &GlobalOptions{Logger: logrus.New()}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: "Query and manage an Addigy organization",
		Long: `addigy talks to the Addigy public API with client credentials and,
for console-only operations, signs in with an admin account.

Credentials are read from ~/.addigy/config.yaml and the ADDIGY_CLIENT_ID,
ADDIGY_CLIENT_SECRET, ADDIGY_ADMIN_USERNAME and ADDIGY_ADMIN_PASSWORD
environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Logger.SetOutput(cmd.ErrOrStderr())
			if opts.Verbose {
				opts.Logger.SetLevel(logrus.DebugLevel)
			} else {
				opts.Logger.SetLevel(logrus.WarnLevel)
			}
			return validateOutput(opts.Output)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (default: $ADDIGY_CONFIG or ~/.addigy/config.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", outputJSON,
		"output format: json or yaml")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"enable debug logging")

	cmd.AddCommand(
		NewLoginCommand(opts),
		NewDevicesCommand(opts),
		NewPoliciesCommand(opts),
		NewAlertsCommand(opts),
		NewMaintenanceCommand(opts),
		NewSoftwareCommand(opts),
		NewUsersCommand(opts),
		NewVersionCommand(),
	)

	return cmd
}

// newClient builds an API client from the config file and environment.
func newClient(opts *GlobalOptions) (*addigy.Client, error) {
	cfg, err := config.LoadWithEnv(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	clientOpts := []addigy.ClientOption{
		addigy.WithCredentials(cfg.ClientID, cfg.ClientSecret),
		addigy.WithLogger(opts.Logger),
	}
	if cfg.AdminUsername != "" || cfg.AdminPassword != "" {
		clientOpts = append(clientOpts, addigy.WithAdminCredentials(cfg.AdminUsername, cfg.AdminPassword))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, addigy.WithBaseURL(cfg.BaseURL))
	}
	if cfg.AppURL != "" {
		clientOpts = append(clientOpts, addigy.WithAppURL(cfg.AppURL))
	}
	if cfg.FileManagerURL != "" {
		clientOpts = append(clientOpts, addigy.WithFileManagerURL(cfg.FileManagerURL))
	}

	client, err := addigy.NewClient(clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "set client_id and client_secret in the config file or environment")
	}
	return client, nil
}

// newSession signs in and, when orgID is set, switches to that organization.
func newSession(cmd *cobra.Command, client *addigy.Client, orgID string) (addigy.SessionAuth, error) {
	session, err := client.Login(cmd.Context())
	if err != nil {
		return addigy.SessionAuth{}, err
	}
	if orgID == "" || orgID == session.OrgID {
		return session, nil
	}
	return client.Impersonate(cmd.Context(), session, orgID)
}
