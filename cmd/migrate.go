package cmd

import (
	"fmt"
	"os"

	"adpace/internal/model"
	"adpace/internal/store"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Postgres.Address == "" {
		return model.NewInputError("postgres_address",
			"no Postgres address configured; set ADPACE_PG_ADDRESS or [postgres] address")
	}

	if err := store.Migrate(cfg.Postgres.Address); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintln(os.Stderr, "  Migrations applied.")
	}
	return nil
}
