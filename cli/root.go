// Package cli wires the handin commands.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is overwritten at build time with -ldflags "-X handin/cli.Version=...".
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigDir string
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "handin",
		Short:         "Guided final-project submission bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config", ".", "directory containing config.yaml")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
