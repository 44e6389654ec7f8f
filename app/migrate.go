package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GhostNetwork/account/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the account collections and seed the configured roles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDaemon(func(d *daemon.Daemon) error {
			if err := d.Migrate(cmd.Context()); err != nil {
				return err
			}

			log.Info().Msg("database migrated")

			return nil
		})
	},
}
