package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/repository"
)

func newTokensCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Refresh token housekeeping",
	}
	var olderThan time.Duration
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired or revoked refresh tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.database()
			if err != nil {
				return err
			}
			n, err := repository.NewTokenRepo(db).PurgeExpired(cmd.Context(), time.Now().UTC().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d refresh tokens\n", n)
			return nil
		},
	}
	purge.Flags().DurationVar(&olderThan, "older-than", 0, "Keep tokens that expired or were revoked more recently than this")
	cmd.AddCommand(purge)
	return cmd
}
