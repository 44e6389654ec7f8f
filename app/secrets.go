package app

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/GhostNetwork/account/internal/daemon"
	"github.com/GhostNetwork/account/internal/settings/secrets"
)

var (
	secretOwner       string
	secretDescription string

	secretsCmd = &cobra.Command{
		Use:   "secrets",
		Short: "Manage user owned API secrets",
	}

	secretsCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Issue a new secret; the plaintext is printed once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDaemon(func(d *daemon.Daemon) error {
				created, err := d.Secrets.Create(cmd.Context(), secrets.CreateRequest{
					Owner:       secretOwner,
					Description: secretDescription,
				})
				if err != nil {
					return err
				}

				printCreated(cmd.OutOrStdout(), created)

				return nil
			})
		},
	}

	secretsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the secrets of an owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDaemon(func(d *daemon.Daemon) error {
				list, err := d.Secrets.List(cmd.Context(), secretOwner)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "CLIENT ID\tDESCRIPTION\tEXPIRES")
				for _, s := range list {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.ClientID, s.Description, s.Expiration.Format(time.RFC3339))
				}

				return w.Flush()
			})
		},
	}

	secretsDeleteCmd = &cobra.Command{
		Use:   "delete <client-id>",
		Short: "Revoke a secret of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDaemon(func(d *daemon.Daemon) error {
				if err := d.Secrets.Delete(cmd.Context(), secretOwner, args[0]); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "secret %s deleted\n", args[0])

				return nil
			})
		},
	}

	secretsRotateCmd = &cobra.Command{
		Use:   "rotate <client-id>",
		Short: "Replace a secret of an owner with a new one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDaemon(func(d *daemon.Daemon) error {
				created, err := d.Secrets.Rotate(cmd.Context(), secretOwner, args[0])
				if created != nil {
					printCreated(cmd.OutOrStdout(), created)
				}

				return err
			})
		},
	}
)

func init() { //nolint: gochecknoinits
	secretsCmd.PersistentFlags().StringVar(&secretOwner, "owner", "", "Id of the owning user")
	_ = secretsCmd.MarkPersistentFlagRequired("owner")

	secretsCreateCmd.Flags().StringVarP(&secretDescription, "description", "d", "", "Description shown in the secret list")
	_ = secretsCreateCmd.MarkFlagRequired("description")

	secretsCmd.AddCommand(secretsCreateCmd, secretsListCmd, secretsDeleteCmd, secretsRotateCmd)
	rootCmd.AddCommand(secretsCmd)
}

func printCreated(w io.Writer, c *secrets.Created) {
	_, _ = fmt.Fprintf(w, "client id:   %s\n", c.ClientID)
	_, _ = fmt.Fprintf(w, "description: %s\n", c.Description)
	_, _ = fmt.Fprintf(w, "expires:     %s\n", c.Expiration.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "secret:      %s\n", c.Plaintext)
	_, _ = fmt.Fprintln(w, "The secret is shown only once.")
}
