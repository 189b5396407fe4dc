package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pgrepo "github.com/artem13815/hr/ingest/pkg/repository/postgres"
	"github.com/artem13815/hr/ingest/pkg/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
		pool, err := postgres.Connect(cmd.Context(), cfg.DatabaseURL, postgres.PoolOptions{MaxConns: 2})
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := pgrepo.Migrate(cmd.Context(), pool)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		}
		for _, v := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %05d\n", v)
		}
		return nil
	},
}
