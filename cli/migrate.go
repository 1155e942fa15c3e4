package cli

import (
	"fmt"

	"handin/config"
	"handin/db"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the archive tables without connecting to Discord.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the submission archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Storage.Path == "" {
				return fmt.Errorf("storage.path is empty")
			}
			conn, err := db.Open(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer conn.Close()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "archive ready at %s\n", cfg.Storage.Path)
			return err
		},
	}
}
