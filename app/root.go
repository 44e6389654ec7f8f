// Package app implements the main application commands.
package app

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GhostNetwork/account/internal/config"
	"github.com/GhostNetwork/account/internal/daemon"
	"github.com/GhostNetwork/account/internal/logger"
)

var (
	configPath string // Path to the configuration directory
	devMode    bool

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "ghost-account",
		Short: "ghost-account manages the identity and client store of GhostNetwork",
		Long: `ghost-account manages the identity and OAuth client store of GhostNetwork:
it migrates the account database, seeds roles, resolves OAuth clients and
issues user owned API secrets.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			var err error
			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				return err
			}

			if cfg.DevMode {
				if dump, err := config.DumpConfigJSON(cfg); err == nil {
					log.Debug().RawJSON("config", []byte(dump)).Msg("configuration loaded")
				}
			}

			return nil
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Path to the configuration directory")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}

	return err
}

// withDaemon builds the daemon for the loaded configuration, runs fn and closes it.
func withDaemon(fn func(d *daemon.Daemon) error) error {
	d, err := daemon.New(&cfg)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := d.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing database failed")
		}
	}()

	return fn(d)
}
