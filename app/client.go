package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/GhostNetwork/account/internal/daemon"
)

var (
	// ErrClientNotFound is returned when no source knows the client.
	ErrClientNotFound = errors.New("client not found")
	// ErrSecretMismatch is returned when no valid secret of the client matches.
	ErrSecretMismatch = errors.New("client secret does not match")
)

var verifySecret string

var (
	clientCmd = &cobra.Command{
		Use:   "client",
		Short: "Inspect OAuth clients",
	}

	clientResolveCmd = &cobra.Command{
		Use:   "resolve <client-id>",
		Short: "Resolve a client the way the authorization server does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDaemon(func(d *daemon.Daemon) error {
				descriptor, err := d.Resolver.FindClientByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if descriptor == nil {
					return fmt.Errorf("%w: %s", ErrClientNotFound, args[0])
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(descriptor)
			})
		},
	}

	clientVerifyCmd = &cobra.Command{
		Use:   "verify <client-id>",
		Short: "Check a client secret against the stored hashes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDaemon(func(d *daemon.Daemon) error {
				descriptor, err := d.Resolver.ValidateSecret(cmd.Context(), args[0], verifySecret, time.Now())
				if err != nil {
					return err
				}
				if descriptor == nil {
					return fmt.Errorf("%w: %s", ErrSecretMismatch, args[0])
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "secret of client %s is valid\n", descriptor.ClientID)

				return err
			})
		},
	}
)

func init() { //nolint: gochecknoinits
	clientVerifyCmd.Flags().StringVar(&verifySecret, "secret", "", "plaintext secret to check")
	_ = clientVerifyCmd.MarkFlagRequired("secret")

	clientCmd.AddCommand(clientResolveCmd, clientVerifyCmd)
	rootCmd.AddCommand(clientCmd)
}
