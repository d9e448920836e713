package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X".
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n",
				cliName, orDefault(version, "dev"), orDefault(commit, "unknown"), orDefault(buildDate, "unknown"))
			return err
		},
	}
}
